package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// QuantityUnspecified marks a record where no quantity strategy matched.
// Quantities are never guessed: either a strategy produced a positive
// count or the field stays unspecified.
const QuantityUnspecified = 0

// Default field values used when an extractor finds nothing.
const (
	CompanyUnknown = "Unknown"
	EventUnknown   = "Unknown Event"
	StandGeneral   = "General"
	StandNA        = "N/A"
)

// FeeSuffix is appended to the event label of convenience-fee invoices.
const FeeSuffix = " (Convenience Fee)"

// ConfidenceBand buckets a confidence score for reporting.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "high"   // >= 80
	BandMedium ConfidenceBand = "medium" // 50-79
	BandLow    ConfidenceBand = "low"    // < 50
)

// BandFor returns the reporting band for a confidence score.
func BandFor(score int) ConfidenceBand {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 50:
		return BandMedium
	default:
		return BandLow
	}
}

// InvoiceRecord is the canonical extraction result for one source document.
// Every field is optional-safe: a miss degrades to the documented default,
// it never blocks assembly of the other fields. Records are write-once;
// nothing mutates them after Process returns.
type InvoiceRecord struct {
	ID       string `json:"id" csv:"-"`
	FileName string `json:"file_name" csv:"File Name"`
	FilePath string `json:"file_path" csv:"File Path"`
	Month    string `json:"month" csv:"Month"`

	Company   string `json:"company" csv:"Company"`
	EventType string `json:"event_type" csv:"Event Type"`
	Event     string `json:"event" csv:"Match/Event"`
	Stand     string `json:"stand" csv:"Stand Name"`

	// Dates are ISO "2006-01-02" strings; empty means absent. EventDate, once
	// resolved from the schedule, is authoritative over any text-derived value.
	InvoiceDate string `json:"invoice_date,omitempty" csv:"Invoice Date"`
	EventDate   string `json:"event_date,omitempty" csv:"Match Date"`

	Quantity    int             `json:"quantity" csv:"Ticket Quantity"`
	TicketPrice decimal.Decimal `json:"ticket_price" csv:"Ticket Price"`
	IsFeeOnly   bool            `json:"is_fee_only" csv:"Is Convenience Fee"`

	Confidence      int    `json:"confidence" csv:"Confidence %"`
	ConfidenceNotes string `json:"confidence_notes" csv:"Confidence Notes"`

	ProcessedAt time.Time `json:"processed_at" csv:"-"`
}

// QuantityLabel renders the quantity for reports, with the unspecified
// sentinel spelled out the way the ledger expects it.
func (r *InvoiceRecord) QuantityLabel() string {
	if r.Quantity == QuantityUnspecified {
		return "Not specified"
	}
	return strconv.Itoa(r.Quantity)
}

// Band returns the confidence band of the record.
func (r *InvoiceRecord) Band() ConfidenceBand {
	return BandFor(r.Confidence)
}
