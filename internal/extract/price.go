package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filename prices outside this window are invoice numbers or other noise.
var (
	filenamePriceMin = decimal.NewFromInt(100)
	filenamePriceMax = decimal.NewFromInt(999_999)
)

// Price extracts the ticket price from document text. Patterns run in
// priority order; when one yields several candidate amounts the largest is
// taken, since totals exceed their own line items. Zero means "price not
// recoverable" and is scored accordingly downstream.
func Price(text string) decimal.Decimal {
	for _, re := range pricePatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if matches == nil {
			continue
		}

		best := decimal.Zero
		found := false
		for _, m := range matches {
			amt, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			if !found || amt.GreaterThan(best) {
				best = amt
				found = true
			}
		}
		if found {
			return best
		}
	}
	return decimal.Zero
}

// PriceFromFilename recovers an amount embedded in the file name, used
// when the text yields nothing. Invoice-number prefixes are stripped first
// and candidates outside the plausible ticket-price window are rejected.
func PriceFromFilename(filename string) decimal.Decimal {
	clean := filenameInvoiceNoRe.ReplaceAllString(filename, "")

	for _, re := range filenamePriceRe {
		m := re.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		amt, err := parseAmount(m[1])
		if err != nil {
			continue
		}
		if amt.GreaterThanOrEqual(filenamePriceMin) && amt.LessThanOrEqual(filenamePriceMax) {
			return amt
		}
	}
	return decimal.Zero
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
