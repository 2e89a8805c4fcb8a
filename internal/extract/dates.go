package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// issueDateLayout matches the "Sun, 31 Mar 2024" form booking platforms
// print after "Date of issue:".
const issueDateLayout = "Mon, 2 Jan 2006"

// Season year boundaries for filename dates. Files are named DD.MM with no
// year; October or later belongs to the previous calendar year of the
// 2023/24 season.
const (
	seasonYear      = 2024
	priorSeasonYear = 2023
)

// InvoiceDate extracts the invoice's issue date as an ISO string. The
// structured "Date of issue" label is tried first, then the DD.MM filename
// convention. Unparseable candidates are discarded, never surfaced as
// errors; the empty string means absent.
func InvoiceDate(text, filename string) string {
	if m := issueDateRe.FindStringSubmatch(text); m != nil {
		raw := strings.TrimSpace(m[1])
		if t, err := time.Parse(issueDateLayout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return dateFromFilename(filename)
}

func dateFromFilename(filename string) string {
	m := filenameDateRe.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return ""
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return ""
	}

	year := seasonYear
	if month >= 10 {
		year = priorSeasonYear
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
