package util

import (
	"strings"
	"time"
)

var dateTplReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)

// FormatDate formats t using a template with YYYY/MM/DD/hh/mm/ss placeholders,
// e.g. "YYYY-MM-DD hh:mm". Zero time yields an empty string.
func FormatDate(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTplReplacer.Replace(tpl))
}
