package export

import (
	"encoding/csv"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// csvRow flattens an InvoiceRecord for the CSV report. Quantity uses the
// spelled-out sentinel so "0" never masquerades as a real count.
type csvRow struct {
	FileName    string `csv:"File Name"`
	Month       string `csv:"Month"`
	InvoiceDate string `csv:"Invoice Date"`
	Company     string `csv:"Company"`
	EventType   string `csv:"Event Type"`
	Event       string `csv:"Match/Event"`
	Stand       string `csv:"Stand Name"`
	EventDate   string `csv:"Match Date"`
	Quantity    string `csv:"Ticket Quantity"`
	TicketPrice string `csv:"Ticket Price"`
	IsFeeOnly   bool   `csv:"Is Convenience Fee"`
	Confidence  int    `csv:"Confidence %"`
	Notes       string `csv:"Confidence Notes"`
	FilePath    string `csv:"File Path"`
}

// WriteCSV writes all records as a single CSV file in report order.
func WriteCSV(records []model.InvoiceRecord, outputPath string) error {
	SortRecords(records)

	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrapf(err, "export: create csv %s", outputPath)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)

	for _, r := range records {
		row := csvRow{
			FileName:    r.FileName,
			Month:       r.Month,
			InvoiceDate: r.InvoiceDate,
			Company:     r.Company,
			EventType:   r.EventType,
			Event:       r.Event,
			Stand:       r.Stand,
			EventDate:   r.EventDate,
			Quantity:    r.QuantityLabel(),
			TicketPrice: r.TicketPrice.String(),
			IsFeeOnly:   r.IsFeeOnly,
			Confidence:  r.Confidence,
			Notes:       r.ConfidenceNotes,
			FilePath:    r.FilePath,
		}
		if err := enc.Encode(row); err != nil {
			return eris.Wrapf(err, "export: encode csv row %s", r.FileName)
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}
