package extract

import (
	"strings"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// EventResult is the outcome of the event cascade. Date is set only when a
// known-event marker carries one; the schedule resolver fills the rest.
type EventResult struct {
	Label string
	Date  string
}

// Event identifies the match or event a document belongs to. The cascade:
// known-event text markers, two team codes in text, two team codes in the
// filename, playoff-stage keywords, then "Unknown Event".
func Event(text, filename string) EventResult {
	for _, ke := range knownEvents {
		if !strings.Contains(text, ke.marker) {
			continue
		}
		if ke.confirm != "" && !strings.Contains(text, ke.confirm) {
			continue
		}
		return EventResult{Label: ke.label, Date: ke.date}
	}

	if label, ok := teamPair(text); ok {
		return EventResult{Label: label}
	}
	if label, ok := teamPair(strings.ToUpper(filename)); ok {
		return EventResult{Label: label}
	}

	if label, ok := playoffStage(text); ok {
		return EventResult{Label: label}
	}
	if label, ok := playoffStage(filename); ok {
		return EventResult{Label: label}
	}

	return EventResult{Label: model.EventUnknown}
}

// teamPair scans for two distinct franchise codes. The pair is joined in
// canonical code order; schedule lookup is order-insensitive so this loses
// nothing. Codes match as whole uppercase words only.
func teamPair(s string) (string, bool) {
	var found []string
	for _, code := range teamCodes {
		if containsWord(s, code) {
			found = append(found, code)
		}
	}
	if len(found) >= 2 {
		return found[0] + " vs " + found[1], true
	}
	return "", false
}

// containsWord reports whether code appears in s bounded by non-letters,
// so "MI" doesn't fire inside "MIDNIGHT".
func containsWord(s, code string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], code)
		if j < 0 {
			return false
		}
		j += i
		end := j + len(code)
		beforeOK := j == 0 || !isLetter(s[j-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		i = j + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

// playoffStage recognizes the knockout-round labels. "Final" must not be a
// semi-final mention.
func playoffStage(s string) (string, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "qualifier"):
		if strings.Contains(lower, "2") {
			return "Qualifier 2", true
		}
		return "Qualifier 1", true
	case strings.Contains(lower, "eliminator"):
		return "Eliminator", true
	case strings.Contains(lower, "final") && !strings.Contains(lower, "semi"):
		return "Final", true
	}
	return "", false
}

// EventType classifies the document's event family for reporting. The
// filename is checked for non-IPL marketplaces first, then team codes and
// playoff keywords, then the month folder as a last resort.
func EventType(filename, filepath string) string {
	lower := strings.ToLower(filename)

	nonIPL := []struct{ token, label string }{
		{"chelsea", "Chelsea FC Match"},
		{"football", "Football Match"},
		{"walk", "Event Walk-in"},
		{"omio", "Travel/Event via Omio"},
		{"ticombo", "Event via Ticombo"},
	}
	for _, n := range nonIPL {
		if strings.Contains(lower, n.token) {
			return n.label
		}
	}

	for _, code := range teamCodes {
		if containsWord(strings.ToUpper(filename), code) {
			return "IPL 2024"
		}
	}

	for _, kw := range []string{"qualifier", "eliminator", "final"} {
		if strings.Contains(lower, kw) {
			return "IPL 2024 Playoffs"
		}
	}

	for _, folder := range []string{"Mar_24", "Apr_24", "May_24"} {
		if strings.Contains(filepath, folder) {
			return "IPL 2024"
		}
	}

	return model.EventUnknown
}

// IsFeeDocument reports whether the document bills a convenience or
// service charge rather than ticket seats.
func IsFeeDocument(text, filename string) bool {
	lowerName := strings.ToLower(filename)
	if strings.Contains(lowerName, "fee") || strings.Contains(lowerName, "_cf") || strings.Contains(lowerName, "convenience") {
		return true
	}
	lowerText := strings.ToLower(text)
	for _, marker := range feeTextMarkers {
		if strings.Contains(lowerText, marker) {
			return true
		}
	}
	return false
}
