// Package extract is the invoice field-extraction engine: ordered pattern
// cascades per field over noisy OCR text and filenames, schedule-backed
// event dating, and confidence scoring of the assembled record.
package extract

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fpl-auction/invoice-cli/internal/model"
	"github.com/fpl-auction/invoice-cli/internal/schedule"
	"github.com/fpl-auction/invoice-cli/internal/scorer"
)

// skipMarkers excludes non-invoice documents by filename: schedules, mail
// exports, and booking confirmations share the invoice folders.
var skipMarkers = []string{"schedule", ".eml", ".ds_store", "confirmed", "booking confirmation"}

// monthFolders maps the ledger's folder convention to report labels.
var monthFolders = []struct{ folder, label string }{
	{"Mar_24", "March 2024"},
	{"Apr_24", "April 2024"},
	{"May_24", "May 2024"},
	{"Jun_24", "June 2024"},
}

// Engine assembles one InvoiceRecord per document. It holds only the
// read-only schedule table, so a single Engine is safe for concurrent use
// across a whole batch.
type Engine struct {
	sched *schedule.Schedule
}

// NewEngine creates an Engine. A nil schedule falls back to the embedded
// fixture table.
func NewEngine(sched *schedule.Schedule) *Engine {
	if sched == nil {
		sched = schedule.New()
	}
	return &Engine{sched: sched}
}

// Excluded reports whether the filename matches the non-invoice deny list.
func Excluded(filename string) bool {
	lower := strings.ToLower(filename)
	for _, marker := range skipMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Process turns raw text and a filename into a canonical record. It never
// fails: empty or garbled text produces a fully-defaulted record whose
// confidence score carries the bad news. The second return is false when
// the filename policy excludes the document outright.
func (e *Engine) Process(text, filename, path string) (*model.InvoiceRecord, bool) {
	if Excluded(filename) {
		return nil, false
	}

	rec := &model.InvoiceRecord{
		ID:          uuid.New().String(),
		FileName:    filename,
		FilePath:    path,
		Month:       monthLabel(path),
		ProcessedAt: time.Now().UTC(),
	}

	rec.Company = Company(text, filename)

	ev := Event(text, filename)
	rec.Event = ev.Label
	rec.EventDate = ev.Date
	rec.EventType = EventType(filename, path)
	rec.IsFeeOnly = IsFeeDocument(text, filename)

	rec.Stand = Stand(text)
	rec.InvoiceDate = InvoiceDate(text, filename)

	// Curated schedule data beats anything scraped out of the text.
	if date, ok := e.sched.Resolve(rec.Event); ok {
		rec.EventDate = date
	}

	rec.TicketPrice = Price(text)
	if rec.TicketPrice.IsZero() {
		rec.TicketPrice = PriceFromFilename(filename)
	}

	if qty, ok := Quantity(text, filename, rec.TicketPrice); ok {
		rec.Quantity = qty
	} else {
		rec.Quantity = model.QuantityUnspecified
	}

	if rec.IsFeeOnly {
		applyFeeAdjustments(rec)
	}

	// Confidence is always computed from the final record, after every
	// cross-field adjustment above.
	rec.Confidence, rec.ConfidenceNotes = scorer.Score(rec)

	return rec, true
}

// applyFeeAdjustments rewrites the record for a service-charge document:
// one charge, no seat, and a fee-marked event label. An unresolved event
// keeps its "Unknown Event" prefix so the scorer still sees it as such.
func applyFeeAdjustments(rec *model.InvoiceRecord) {
	if !strings.HasSuffix(rec.Event, model.FeeSuffix) {
		rec.Event += model.FeeSuffix
	}
	rec.Stand = model.StandNA
	rec.Quantity = 1
}

// monthLabel derives the report month from the document's folder.
func monthLabel(path string) string {
	dir := filepath.Dir(path)
	for _, m := range monthFolders {
		if strings.Contains(dir, m.folder) || strings.Contains(path, m.folder) {
			return m.label
		}
	}
	return "Unknown"
}
