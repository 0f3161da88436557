package replay

import (
	"errors"
	"fmt"
	"io"
	"time"
)

type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// Stream replays captured chunks as an io.Reader, waiting between chunks
// according to their recorded timing.
//
// speed: 1.0 = real time, 2.0 = 2x speed (half waits), 0 = no waiting.
type Stream struct {
	recs    []Record
	speed   float64
	sleeper Sleeper

	i        int
	pending  []byte
	origin   time.Duration
	lastAt   time.Duration
	haveLast bool
}

func NewStream(records []Record, speed float64, sleeper Sleeper) (*Stream, error) {
	if speed < 0 {
		return nil, fmt.Errorf("replay speed must be >= 0")
	}
	if len(records) == 0 {
		return nil, errors.New("no records")
	}
	if sleeper == nil {
		sleeper = realSleeper{}
	}
	return &Stream{recs: records, speed: speed, sleeper: sleeper}, nil
}

func (s *Stream) Read(p []byte) (int, error) {
	for len(s.pending) == 0 {
		if s.i >= len(s.recs) {
			return 0, io.EOF
		}
		r := s.recs[s.i]
		s.i++
		if r.Chunk == nil {
			s.origin = r.At
			s.haveLast = false
			continue
		}
		s.wait(r.At)
		s.pending = r.Chunk
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *Stream) wait(recAt time.Duration) {
	at := recAt - s.origin
	if at < 0 {
		at = 0
	}
	if s.haveLast && s.speed > 0 {
		if d := at - s.lastAt; d > 0 {
			s.sleeper.Sleep(time.Duration(float64(d) / s.speed))
		}
	}
	s.lastAt = at
	s.haveLast = true
}
