package nmea

import "strings"

// MaxFields bounds how many comma fields SplitFields will return.
const MaxFields = 20

// SplitFields splits s on commas into at most max fields.
//
// Whitespace before the first character of a field is skipped; whitespace
// inside a field is kept. Empty fields between two commas are preserved, but
// a final comma with nothing after it does not add an empty trailing field,
// and neither does trailing whitespace. An empty string has no fields.
func SplitFields(s string, max int) []string {
	if s == "" || max <= 0 {
		return nil
	}
	fields := make([]string, 0, max)
	for len(fields) < max {
		i := 0
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		s = s[i:]
		if s == "" {
			break
		}
		comma := strings.IndexByte(s, ',')
		if comma == -1 {
			fields = append(fields, s)
			break
		}
		fields = append(fields, s[:comma])
		s = s[comma+1:]
		if s == "" {
			break
		}
	}
	return fields
}
