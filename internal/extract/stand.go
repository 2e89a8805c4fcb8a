package extract

import (
	"strings"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// Stand extracts the stand or section name from document text. Venue
// codes printed verbatim are preferred; otherwise a generic cascade over
// stand/terrace/lounge/phase/gate tokens applies. Default "General".
func Stand(text string) string {
	if m := standLiteralRe.FindString(text); m != "" {
		return m
	}

	for _, re := range standPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return model.StandGeneral
}
