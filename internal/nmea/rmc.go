package nmea

import (
	"bytes"
	"fmt"
	"time"
)

// rmcFieldCount is the number of fields in a GPRMC sentence, counting the
// sentence word itself.
const rmcFieldCount = 13

var rmcPrefix = []byte("GPRMC")

// Logger is the subset of *log.Logger used for verbose narration.
type Logger interface {
	Printf(format string, v ...any)
}

// Timestamp is the date and time carried by an RMC sentence.
type Timestamp struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int

	Day   int
	Month int // 1-12

	// Year counts from 1900, struct tm style. The two-digit year from the
	// sentence is always read as 20YY, so Year is the raw value plus 100.
	// Dates past 2099 wrap back to 2000.
	Year int

	// Time is the absolute instant, read at the standard offset of the
	// Parser's Location.
	Time time.Time
}

// Parser validates GPRMC sentences and decodes their timestamp.
type Parser struct {
	// Location is the zone the calendar fields are interpreted in. RMC fields
	// are UTC, so nil means time.UTC. Any other zone is applied at its
	// standard offset, ignoring summer time, which matches tools that hand
	// the fields to mktime(3) with tm_isdst = 0.
	Location *time.Location

	// Verbose narrates each stage through Log.
	Verbose bool
	Log     Logger
}

// Parse validates one sentence body, as returned by Framer.Feed, and decodes
// its timestamp. Rejections return one of the package sentinel errors.
func (p *Parser) Parse(sentence []byte) (Timestamp, error) {
	p.logf("GPS: [%s]", sentence)
	if !bytes.HasPrefix(sentence, rmcPrefix) {
		p.logf("Waiting for an RMC message - ignoring this one...")
		return Timestamp{}, ErrWrongSentenceType
	}

	payload, err := VerifyChecksum(sentence)
	switch err {
	case nil:
	case ErrMalformedSentence:
		p.logf("?Badly formed NMEA sentence - ignoring...")
		return Timestamp{}, err
	default:
		p.logf("?Invalid checksum - ignoring...")
		return Timestamp{}, err
	}
	p.logf("Checksum is good.")

	fields := SplitFields(string(payload), MaxFields)
	if len(fields) != rmcFieldCount {
		p.logf("Incorrect number of RMC parameters in sentence (%d)...", len(fields))
		return Timestamp{}, fmt.Errorf("%w: got %d want %d", ErrFieldCountMismatch, len(fields), rmcFieldCount)
	}
	p.logf("GPS Time: %s", fields[1])
	p.logf("GPS Date: %s", fields[9])

	ts := DecodeTimestamp(fields[1], fields[9], p.location())
	p.logf("Setting time to %s", ts.Time.Format(time.ANSIC))
	return ts, nil
}

// DecodeTimestamp decodes an RMC time field (HHMMSS.mmm) and date field
// (DDMMYY). Fields are read at fixed offsets with Digits, so short or garbled
// input decodes to zeros rather than failing.
func DecodeTimestamp(timeField, dateField string, loc *time.Location) Timestamp {
	if loc == nil {
		loc = time.UTC
	}
	ts := Timestamp{
		Hour:   digitsAt(timeField, 0, 2),
		Minute: digitsAt(timeField, 2, 2),
		Second: digitsAt(timeField, 4, 2),
		// Offset 7 skips the decimal point at offset 6.
		Millisecond: digitsAt(timeField, 7, 3),
		Day:         digitsAt(dateField, 0, 2),
		Month:       digitsAt(dateField, 2, 2),
		Year:        digitsAt(dateField, 4, 2) + 100,
	}
	// time.Date normalizes out-of-range fields (day 0, month 13) the same way
	// mktime does.
	wall := time.Date(1900+ts.Year, time.Month(ts.Month), ts.Day,
		ts.Hour, ts.Minute, ts.Second, ts.Millisecond*int(time.Millisecond), time.UTC)
	ts.Time = wall
	if loc != time.UTC {
		// Fields are read at the zone's standard offset all year, as mktime
		// does with tm_isdst = 0.
		off := standardOffset(wall, loc)
		ts.Time = wall.Add(-time.Duration(off) * time.Second).In(loc)
	}
	return ts
}

// standardOffset returns loc's UTC offset in seconds around t, with any
// daylight-saving shift removed.
func standardOffset(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	_, off := t.Zone()
	if !t.IsDST() {
		return off
	}
	for _, m := range []time.Month{time.January, time.July} {
		ref := time.Date(t.Year(), m, 1, 12, 0, 0, 0, loc)
		if !ref.IsDST() {
			_, off = ref.Zone()
			return off
		}
	}
	return off
}

func (p *Parser) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p *Parser) logf(format string, v ...any) {
	if p.Verbose && p.Log != nil {
		p.Log.Printf(format, v...)
	}
}
