package nmea

import "errors"

// Sentence rejection reasons. None of them are fatal; the caller drops the
// sentence and keeps listening.
var (
	ErrFramingOverflow    = errors.New("nmea: sentence exceeds maximum length")
	ErrWrongSentenceType  = errors.New("nmea: not an RMC sentence")
	ErrMalformedSentence  = errors.New("nmea: badly formed sentence, no checksum")
	ErrChecksumMismatch   = errors.New("nmea: checksum mismatch")
	ErrFieldCountMismatch = errors.New("nmea: incorrect number of RMC fields")
)
