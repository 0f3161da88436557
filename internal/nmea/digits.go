package nmea

// Digits decodes up to n leading ASCII digits of s as a non-negative integer.
//
// It is best-effort: decoding stops silently at the first non-digit or at the
// end of s, and yields whatever was accumulated so far. A garbled subfield
// therefore decodes to a truncated or zero value instead of an error. GPS
// receivers emit fixed-width numeric fields, so this has been good enough.
func Digits(s string, n int) int {
	v := 0
	for i := 0; i < n && i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
	}
	return v
}

// digitsAt is Digits on s[off:], treating an offset past the end as empty.
func digitsAt(s string, off, n int) int {
	if off >= len(s) {
		return 0
	}
	return Digits(s[off:], n)
}
