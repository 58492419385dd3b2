package textutil

import (
	"regexp"
	"strings"
)

var nonNumericRegex = regexp.MustCompile(`[^\d.,-]`)

// OnlyNumbers strips everything but digits and numeric separators from
// a display value and normalizes the decimal comma to a point, so
// "1 234,5 km" becomes "1234.5".
func OnlyNumbers(s string) string {
	s = nonNumericRegex.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, ",", ".")
}

// TrimPersonName cuts a multi-line member cell down to the display name
// on its first line. Team admins get contact details rendered on
// followup lines of the same cell.
func TrimPersonName(name string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(name), "\n")
	return strings.TrimSpace(line)
}
