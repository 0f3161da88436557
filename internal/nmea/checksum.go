package nmea

import "bytes"

// Checksum returns the NMEA XOR checksum of body, which must not include the
// leading `$` or the `*` delimiter.
func Checksum(body []byte) byte {
	var ck byte
	for _, b := range body {
		ck ^= b
	}
	return ck
}

// VerifyChecksum checks the `*HH` checksum of a sentence body (without `$`)
// and returns the part of the body before `*`.
//
// The declared value is read like strtol(s, NULL, 16): leading whitespace is
// skipped, an optional sign and 0x/0X prefix are accepted, hex digits are
// consumed until the first non-hex byte, and no digits at all reads as zero.
// Anything trailing the digits is ignored.
func VerifyChecksum(body []byte) ([]byte, error) {
	star := bytes.IndexByte(body, '*')
	if star == -1 {
		return nil, ErrMalformedSentence
	}
	payload := body[:star]
	if declared, ok := parseHex(body[star+1:]); !ok || declared != uint64(Checksum(payload)) {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}

// parseHex reports false once the value no longer fits in a byte, or is
// negative, since neither can match a checksum.
func parseHex(s []byte) (uint64, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	// The prefix only counts when a hex digit follows; "0xZ" reads as 0.
	if i+2 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
		if _, ok := hexVal(s[i+2]); ok {
			i += 2
		}
	}
	var v uint64
	for ; i < len(s); i++ {
		d, ok := hexVal(s[i])
		if !ok {
			break
		}
		v = v<<4 | uint64(d)
		if v > 0xFF {
			return v, false
		}
	}
	if neg && v != 0 {
		return v, false
	}
	return v, true
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// isSpace matches the C locale isspace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
