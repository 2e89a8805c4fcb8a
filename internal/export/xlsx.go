package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// recordColumns defines the ordered invoice-sheet columns.
var recordColumns = []string{
	"File Name",
	"Month",
	"Invoice Date",
	"Company",
	"Event Type",
	"Match/Event",
	"Stand Name",
	"Match Date",
	"Ticket Quantity",
	"Ticket Price",
	"Is Convenience Fee",
	"Confidence %",
	"Confidence Notes",
	"File Path",
}

// WriteXLSX writes the full report workbook: all invoices, one sheet per
// confidence band, summary statistics, and per-company / per-month
// aggregations.
func WriteXLSX(records []model.InvoiceRecord, outputPath string) error {
	SortRecords(records)

	f := xlsx.NewFile()

	if err := addRecordSheet(f, "All Invoices", records); err != nil {
		return err
	}

	bands := []struct {
		name string
		band model.ConfidenceBand
	}{
		{"High Confidence (80%+)", model.BandHigh},
		{"Medium Confidence (50-79%)", model.BandMedium},
		{"Low Confidence (<50%)", model.BandLow},
	}
	for _, b := range bands {
		var subset []model.InvoiceRecord
		for _, r := range records {
			if r.Band() == b.band {
				subset = append(subset, r)
			}
		}
		if err := addRecordSheet(f, b.name, subset); err != nil {
			return err
		}
	}

	summary := Summarize(records)
	if err := addSummarySheet(f, summary); err != nil {
		return err
	}
	if err := addGroupSheet(f, "By Company", "Company", summary.ByCompany); err != nil {
		return err
	}
	if err := addGroupSheet(f, "By Month", "Month", summary.ByMonth); err != nil {
		return err
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrapf(err, "export: save xlsx %s", outputPath)
	}
	return nil
}

func addRecordSheet(f *xlsx.File, name string, records []model.InvoiceRecord) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	for _, col := range recordColumns {
		header.AddCell().SetString(col)
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().SetString(r.FileName)
		row.AddCell().SetString(r.Month)
		row.AddCell().SetString(r.InvoiceDate)
		row.AddCell().SetString(r.Company)
		row.AddCell().SetString(r.EventType)
		row.AddCell().SetString(r.Event)
		row.AddCell().SetString(r.Stand)
		row.AddCell().SetString(r.EventDate)
		row.AddCell().SetString(r.QuantityLabel())
		price, _ := r.TicketPrice.Float64()
		row.AddCell().SetFloat(price)
		row.AddCell().SetBool(r.IsFeeOnly)
		row.AddCell().SetInt(r.Confidence)
		row.AddCell().SetString(r.ConfidenceNotes)
		row.AddCell().SetString(r.FilePath)
	}
	return nil
}

func addSummarySheet(f *xlsx.File, s Summary) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	header := sheet.AddRow()
	header.AddCell().SetString("Metric")
	header.AddCell().SetString("Value")

	addMetric := func(metric, value string) {
		row := sheet.AddRow()
		row.AddCell().SetString(metric)
		row.AddCell().SetString(value)
	}
	addCount := func(metric string, n int) {
		row := sheet.AddRow()
		row.AddCell().SetString(metric)
		row.AddCell().SetInt(n)
	}

	addCount("Total Invoices", s.Total)
	addCount("High Confidence (>=80%)", s.HighCount)
	addCount("Medium Confidence (50-79%)", s.MediumCount)
	addCount("Low Confidence (<50%)", s.LowCount)
	addMetric("Total Amount (All)", FormatAmount(s.TotalAmount))
	addMetric("Total Amount (High Confidence)", FormatAmount(s.HighAmount))
	addCount("IPL Invoices", s.IPLCount)
	addCount("Other Event Invoices", s.OtherCount)
	addCount("Convenience Fee Invoices", s.FeeCount)

	return nil
}

func addGroupSheet(f *xlsx.File, name, keyHeader string, stats []GroupStat) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	header.AddCell().SetString(keyHeader)
	header.AddCell().SetString("Invoice Count")
	header.AddCell().SetString("Total Amount")
	header.AddCell().SetString("Avg Confidence %")

	for _, st := range stats {
		row := sheet.AddRow()
		row.AddCell().SetString(st.Key)
		row.AddCell().SetInt(st.Count)
		amount, _ := st.TotalAmount.Float64()
		row.AddCell().SetFloat(amount)
		row.AddCell().SetFloat(st.AvgConfidence)
	}
	return nil
}
