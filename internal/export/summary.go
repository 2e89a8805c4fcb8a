// Package export renders stored invoice records as XLSX and CSV reports,
// mirroring the ledger's spreadsheet layout.
package export

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// rupees formats amounts with English digit grouping for the report.
var rupees = message.NewPrinter(language.English)

// Summary aggregates a record set for the report's overview sheets.
type Summary struct {
	Total       int
	HighCount   int
	MediumCount int
	LowCount    int
	FeeCount    int
	IPLCount    int
	OtherCount  int

	TotalAmount decimal.Decimal
	HighAmount  decimal.Decimal

	ByCompany []GroupStat
	ByMonth   []GroupStat
}

// GroupStat is one aggregation row (per company or per month).
type GroupStat struct {
	Key           string
	Count         int
	TotalAmount   decimal.Decimal
	AvgConfidence float64
}

// Summarize computes the report aggregates from a record set.
func Summarize(records []model.InvoiceRecord) Summary {
	s := Summary{
		Total:       len(records),
		TotalAmount: decimal.Zero,
		HighAmount:  decimal.Zero,
	}

	for _, r := range records {
		s.TotalAmount = s.TotalAmount.Add(r.TicketPrice)
		switch r.Band() {
		case model.BandHigh:
			s.HighCount++
			s.HighAmount = s.HighAmount.Add(r.TicketPrice)
		case model.BandMedium:
			s.MediumCount++
		default:
			s.LowCount++
		}
		if r.IsFeeOnly {
			s.FeeCount++
		}
		if strings.Contains(r.EventType, "IPL") {
			s.IPLCount++
		} else {
			s.OtherCount++
		}
	}

	s.ByCompany = groupBy(records, func(r model.InvoiceRecord) string { return r.Company })
	s.ByMonth = groupBy(records, func(r model.InvoiceRecord) string { return r.Month })

	// Companies by total amount descending; months keep season order.
	sort.Slice(s.ByCompany, func(i, j int) bool {
		return s.ByCompany[i].TotalAmount.GreaterThan(s.ByCompany[j].TotalAmount)
	})
	sort.Slice(s.ByMonth, func(i, j int) bool {
		return monthOrder(s.ByMonth[i].Key) < monthOrder(s.ByMonth[j].Key)
	})

	return s
}

func groupBy(records []model.InvoiceRecord, key func(model.InvoiceRecord) string) []GroupStat {
	type agg struct {
		count      int
		amount     decimal.Decimal
		confidence int
	}
	groups := make(map[string]*agg)
	for _, r := range records {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &agg{amount: decimal.Zero}
			groups[k] = g
		}
		g.count++
		g.amount = g.amount.Add(r.TicketPrice)
		g.confidence += r.Confidence
	}

	stats := make([]GroupStat, 0, len(groups))
	for k, g := range groups {
		stats = append(stats, GroupStat{
			Key:           k,
			Count:         g.count,
			TotalAmount:   g.amount,
			AvgConfidence: float64(g.confidence) / float64(g.count),
		})
	}
	return stats
}

// monthOrder sorts season months chronologically with unknowns last.
func monthOrder(month string) int {
	switch month {
	case "March 2024":
		return 1
	case "April 2024":
		return 2
	case "May 2024":
		return 3
	case "June 2024":
		return 4
	default:
		return 5
	}
}

// FormatAmount renders a decimal amount as a grouped rupee string.
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return rupees.Sprintf("₹%.2f", f)
}

// SortRecords orders records the way the report lists them: confidence
// descending, then month, invoice date, and filename.
func SortRecords(records []model.InvoiceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if monthOrder(a.Month) != monthOrder(b.Month) {
			return monthOrder(a.Month) < monthOrder(b.Month)
		}
		if a.InvoiceDate != b.InvoiceDate {
			return a.InvoiceDate < b.InvoiceDate
		}
		return a.FileName < b.FileName
	})
}
