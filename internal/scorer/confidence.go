// Package scorer rates how trustworthy an extracted invoice record is.
// The score is advisory triage for manual review, not a statistical
// estimate: it is a deterministic function of the final record alone.
package scorer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// suspiciousPrice is the threshold above which an extracted amount is more
// likely a misread invoice number than a real ticket price.
var suspiciousPrice = decimal.NewFromInt(1_000_000)

// trustedCompanies are vendors whose invoices follow stable layouts the
// extractors recognize reliably.
var trustedCompanies = map[string]bool{
	"BookMyShow":    true,
	"Paytm Insider": true,
	"TicketGenie":   true,
}

// rule is one condition/adjustment pair. A negative delta carries a reason
// shown to the reviewer; bonuses adjust silently.
type rule struct {
	applies func(r *model.InvoiceRecord) bool
	delta   int
	reason  string
}

var rules = []rule{
	{
		applies: func(r *model.InvoiceRecord) bool { return r.Company == model.CompanyUnknown },
		delta:   -20,
		reason:  "Company unclear",
	},
	{
		applies: func(r *model.InvoiceRecord) bool { return r.TicketPrice.IsZero() },
		delta:   -25,
		reason:  "Price not found",
	},
	{
		applies: func(r *model.InvoiceRecord) bool { return r.TicketPrice.GreaterThan(suspiciousPrice) },
		delta:   -15,
		reason:  "Price uncertain",
	},
	{
		// Fee handling may suffix the label, so match on the prefix.
		applies: func(r *model.InvoiceRecord) bool { return strings.HasPrefix(r.Event, model.EventUnknown) },
		delta:   -20,
		reason:  "Event unclear",
	},
	{
		applies: func(r *model.InvoiceRecord) bool { return r.InvoiceDate == "" },
		delta:   -15,
		reason:  "Date missing",
	},
	{
		applies: func(r *model.InvoiceRecord) bool { return r.IsFeeOnly },
		delta:   -5,
		reason:  "Fee invoice",
	},
	{
		applies: func(r *model.InvoiceRecord) bool { return trustedCompanies[r.Company] },
		delta:   5,
	},
	{
		applies: func(r *model.InvoiceRecord) bool { return r.EventDate != "" },
		delta:   5,
	},
}

// Score folds the rule table over the assembled record and returns the
// clamped confidence with its joined reasons. Re-running on an identical
// record always yields identical output.
func Score(r *model.InvoiceRecord) (int, string) {
	score := 100
	var reasons []string

	for _, rule := range rules {
		if !rule.applies(r) {
			continue
		}
		score += rule.delta
		if rule.reason != "" {
			reasons = append(reasons, rule.reason)
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if len(reasons) == 0 {
		return score, "High confidence"
	}
	return score, strings.Join(reasons, ", ")
}
