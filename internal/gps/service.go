package gps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	gonmea "github.com/adrianmo/go-nmea"

	"gps-time/internal/clock"
	"gps-time/internal/nmea"
)

var (
	// ErrClockApply wraps a failure from the clock.Setter. It is fatal.
	ErrClockApply = errors.New("gps: setting the system clock failed")
	// ErrStreamEnded means the input stopped before any usable RMC sentence.
	ErrStreamEnded = errors.New("gps: stream ended before a valid RMC sentence")
)

// readBufferSize matches the sentence buffer so one read never holds more
// than a couple of sentences.
const readBufferSize = 512

// Config controls a Service.
type Config struct {
	// Device and Baud are only used for log context.
	Device string
	Baud   int

	// Location is the zone RMC fields are interpreted in; nil means UTC.
	Location *time.Location

	// DryRun marks a setter that does not touch the clock, so success is not
	// reported as a clock change.
	DryRun bool

	// Verbose narrates every sentence and stage to Log.
	Verbose bool
	Log     *log.Logger
}

// Stats counts what happened to the sentences seen so far.
type Stats struct {
	Sentences  uint64
	Accepted   uint64
	Overflows  uint64
	WrongType  uint64
	Malformed  uint64
	BadSum     uint64
	FieldCount uint64
}

// Service is the single-threaded read, frame, parse, set loop.
type Service struct {
	cfg    Config
	setter clock.Setter
	framer *nmea.Framer
	parser nmea.Parser
	stats  Stats
}

func New(cfg Config, setter clock.Setter) *Service {
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}
	s := &Service{
		cfg:    cfg,
		setter: setter,
		framer: nmea.NewFramer(),
	}
	s.parser = nmea.Parser{Location: cfg.Location, Verbose: cfg.Verbose, Log: cfg.Log}
	return s
}

// Stats returns the sentence counters.
func (s *Service) Stats() Stats {
	st := s.stats
	st.Overflows = s.framer.Overflows()
	return st
}

// Run reads r until the clock has been set from one RMC sentence.
//
// It returns the applied timestamp and a nil error on success. A clock
// failure returns an error wrapping ErrClockApply. If r ends or fails first,
// the error wraps ErrStreamEnded, or is ctx.Err() when ctx was cancelled.
// Rejected sentences are skipped; waiting for the next one is the retry.
func (s *Service) Run(ctx context.Context, r io.Reader) (nmea.Timestamp, error) {
	if s == nil || s.setter == nil {
		return nmea.Timestamp{}, fmt.Errorf("gps service has no clock setter")
	}
	if ctx == nil {
		return nmea.Timestamp{}, fmt.Errorf("ctx is nil")
	}

	buf := make([]byte, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return nmea.Timestamp{}, err
		}

		n, rerr := r.Read(buf)
		for _, b := range buf[:n] {
			sentence, ok := s.feed(b)
			if !ok {
				continue
			}
			ts, err := s.handle(sentence)
			if err != nil {
				continue
			}
			return ts, s.apply(ts)
		}

		if rerr != nil {
			if cerr := ctx.Err(); cerr != nil {
				return nmea.Timestamp{}, cerr
			}
			return nmea.Timestamp{}, fmt.Errorf("%w: %v", ErrStreamEnded, rerr)
		}
	}
}

func (s *Service) feed(b byte) ([]byte, bool) {
	before := s.framer.Overflows()
	sentence, ok := s.framer.Feed(b)
	if s.framer.Overflows() != before {
		s.logf("?%v - discarding...", nmea.ErrFramingOverflow)
	}
	return sentence, ok
}

// handle parses one framed sentence and updates the counters.
func (s *Service) handle(sentence []byte) (nmea.Timestamp, error) {
	s.stats.Sentences++
	ts, err := s.parser.Parse(sentence)
	switch {
	case err == nil:
		s.stats.Accepted++
		s.describeFix(sentence)
	case errors.Is(err, nmea.ErrWrongSentenceType):
		s.stats.WrongType++
	case errors.Is(err, nmea.ErrMalformedSentence):
		s.stats.Malformed++
	case errors.Is(err, nmea.ErrChecksumMismatch):
		s.stats.BadSum++
	case errors.Is(err, nmea.ErrFieldCountMismatch):
		s.stats.FieldCount++
	}
	return ts, err
}

func (s *Service) apply(ts nmea.Timestamp) error {
	if err := s.setter.Set(ts.Time); err != nil {
		return fmt.Errorf("%w: %v", ErrClockApply, err)
	}
	if s.cfg.DryRun {
		s.logf("Dry run, system clock left unchanged. Operation complete.")
		return nil
	}
	s.logf("Time set successfully. Operation complete.")
	if !s.cfg.Verbose {
		log.Printf("gps clock set time=%s device=%s baud=%d", ts.Time.UTC().Format(time.RFC3339Nano), s.cfg.Device, s.cfg.Baud)
	}
	return nil
}

// describeFix narrates the navigation fields of an accepted sentence. It is
// observational only; the timestamp has already been decoded.
func (s *Service) describeFix(sentence []byte) {
	if !s.cfg.Verbose {
		return
	}
	parsed, err := gonmea.Parse("$" + string(sentence))
	if err != nil {
		s.logf("GPS Fix: undecodable (%v)", err)
		return
	}
	rmc, ok := parsed.(gonmea.RMC)
	if !ok {
		return
	}
	validity := "void"
	if strings.EqualFold(rmc.Validity, gonmea.ValidRMC) {
		validity = "active"
	}
	s.logf("GPS Fix: %s lat=%s lon=%s speed=%.2fkt course=%.2f",
		validity, gonmea.FormatGPS(rmc.Latitude), gonmea.FormatGPS(rmc.Longitude), rmc.Speed, rmc.Course)
}

func (s *Service) logf(format string, v ...any) {
	if s.cfg.Verbose {
		s.cfg.Log.Printf(format, v...)
	}
}
