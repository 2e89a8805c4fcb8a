package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// Seat clusters outside this window are almost certainly unrelated numeric
// text (order ids, tax lines), not seat listings.
const (
	minSeatCluster = 1
	maxSeatCluster = 20
)

// Bounds for the high-value finals estimate: the implied per-ticket price
// must itself be plausible or the guess is rejected.
var (
	bulkAmountFloor = decimal.NewFromInt(100_000)
	unitPriceFloor  = 10_000.0
	unitPriceCeil   = 100_000.0
	assumedBulkSize = 50.0
)

// Quantity runs the ticket-count fallback chain and returns the count with
// ok=false only when every strategy missed. Strategies are strictly
// ordered; the first success wins and later ones are never consulted.
//
// amount is the already-extracted ticket price, used only by the
// high-value estimate; pass decimal zero when unknown.
func Quantity(text, filename string, amount decimal.Decimal) (int, bool) {
	// Fee documents bill one charge regardless of seat count.
	if IsFeeDocument(text, filename) {
		return 1, true
	}

	if n, ok := directQuantity(text); ok {
		return n, true
	}
	if n, ok := ticketLineSum(text); ok {
		return n, true
	}
	if n, ok := seatRangeSum(text); ok {
		return n, true
	}
	if n, ok := seatClusterCount(text); ok {
		return n, true
	}
	if n, ok := bulkEstimate(text, amount); ok {
		return n, true
	}
	if m := ticketsColonRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := tableQuantityRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}

	return model.QuantityUnspecified, false
}

// directQuantity matches explicit count phrases. "N tickets" is skipped
// when followed by "x": that is a unit-price line.
func directQuantity(text string) (int, bool) {
	if loc := ticketCountRe.FindStringSubmatchIndex(text); loc != nil {
		rest := strings.TrimLeft(text[loc[1]:], " ")
		if !strings.HasPrefix(rest, "x") && !strings.HasPrefix(rest, "X") {
			if n, err := strconv.Atoi(text[loc[2]:loc[3]]); err == nil && n > 0 {
				return n, true
			}
		}
	}

	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// ticketLineSum totals per-line quantities when the invoice lists several
// ticket line items.
func ticketLineSum(text string) (int, bool) {
	total := 0
	for _, m := range ticketLineRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	if total > 0 {
		return total, true
	}
	return 0, false
}

// seatRangeSum counts seats in range notations like "T-32 to T-41",
// summing across every detected range.
func seatRangeSum(text string) (int, bool) {
	total := 0
	for _, m := range seatRangeRe.FindAllStringSubmatch(text, -1) {
		start := firstNumberRe.FindString(m[1])
		end := firstNumberRe.FindString(m[2])
		if start == "" || end == "" {
			continue
		}
		a, err1 := strconv.Atoi(start)
		b, err2 := strconv.Atoi(end)
		if err1 != nil || err2 != nil {
			continue
		}
		d := b - a
		if d < 0 {
			d = -d
		}
		total += d + 1
	}
	if total > 0 {
		return total, true
	}
	return 0, false
}

// seatClusterCount counts distinct seat tokens listed together, e.g.
// "EEE-5 EEE-6 EEE-7". Only the first few clusters are inspected and
// counts outside the sane window are rejected as numeric noise.
func seatClusterCount(text string) (int, bool) {
	clusters := seatClusterRe.FindAllString(text, 5)
	best := 0
	for _, cluster := range clusters {
		seats := seatTokenRe.FindAllString(cluster, -1)
		if len(seats) >= minSeatCluster && len(seats) <= maxSeatCluster && len(seats) > best {
			best = len(seats)
		}
	}
	if best > 0 {
		return best, true
	}
	return 0, false
}

// bulkEstimate guesses a count for very large amounts on finals
// documents by assuming an average price band. Best effort only: the
// estimate is accepted solely when the implied unit price is plausible.
func bulkEstimate(text string, amount decimal.Decimal) (int, bool) {
	if amount.LessThanOrEqual(bulkAmountFloor) {
		return 0, false
	}
	if !strings.Contains(text, "IPL") || !strings.Contains(text, "Final") {
		return 0, false
	}

	amt, _ := amount.Float64()
	unit := amt / assumedBulkSize
	if unit <= unitPriceFloor || unit >= unitPriceCeil {
		return 0, false
	}
	return int(math.Round(amt / unit)), true
}
