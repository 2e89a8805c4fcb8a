package extract

import (
	"strings"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// Company resolves the issuing vendor from document text, falling back to
// filename traces. First matching rule wins; unresolved vendors come back
// as "Unknown".
func Company(text, filename string) string {
	if name, ok := matchVendors(textVendors, text); ok {
		return name
	}
	if name, ok := matchVendors(filenameVendors, filename); ok {
		return name
	}
	return model.CompanyUnknown
}

func matchVendors(rules []vendorRule, s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, rule := range rules {
		for _, tok := range rule.tokens {
			if strings.Contains(lower, tok) {
				return rule.name, true
			}
		}
	}
	return "", false
}
