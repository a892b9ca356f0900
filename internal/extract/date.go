package extract

import (
	"strings"
	"time"
)

// frenchMonths maps lowercase French month names to their numeric form.
// Matching is exact-word: "Mars" or "MARS" do not resolve.
var frenchMonths = map[string]string{
	"janvier":   "01",
	"février":   "02",
	"mars":      "03",
	"avril":     "04",
	"mai":       "05",
	"juin":      "06",
	"juillet":   "07",
	"août":      "08",
	"septembre": "09",
	"octobre":   "10",
	"novembre":  "11",
	"décembre":  "12",
}

var slashLayouts = []string{"02/01/2006", "02-01-2006"}

// NormalizeDate converts "dd/mm/yyyy", "dd-mm-yyyy" or a French-locale
// "d monthname yyyy" string to ISO "yyyy-mm-dd". Anything it cannot parse is
// returned unchanged: a bad date degrades the field, never the document.
func NormalizeDate(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return s
	}
	for _, layout := range slashLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	// "15 mars 2024": substitute the month name, then re-parse as d/mm/yyyy.
	fields := strings.Fields(raw)
	if len(fields) == 3 {
		if mm, ok := frenchMonths[fields[1]]; ok {
			if t, err := time.Parse("2/01/2006", fields[0]+"/"+mm+"/"+fields[2]); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return s
}
