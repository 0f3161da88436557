package nmea

// MaxSentenceLen is the longest sentence body (between `$` and the line
// terminator) the Framer will buffer. Longer lines are dropped whole.
const MaxSentenceLen = 510

// FramerState is the position of the Framer within the current line.
type FramerState int

const (
	// WaitingForLineEnd absorbs bytes until the next CR or LF.
	WaitingForLineEnd FramerState = iota
	// WaitingForDollar expects the first byte of a line to be `$`.
	WaitingForDollar
	// Capturing buffers the sentence body until a CR or LF.
	Capturing
)

func (s FramerState) String() string {
	switch s {
	case WaitingForLineEnd:
		return "waiting_for_line_end"
	case WaitingForDollar:
		return "waiting_for_dollar"
	case Capturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// Framer is a byte-at-a-time sentence reassembler.
//
// It starts in WaitingForLineEnd so that a partial line at the start of the
// stream is never mistaken for a sentence. Malformed framing heals itself at
// the next line terminator.
//
// A Framer is not safe for concurrent use.
type Framer struct {
	state     FramerState
	buf       []byte
	max       int
	overflows uint64
}

// NewFramer returns a Framer bounded at MaxSentenceLen.
func NewFramer() *Framer {
	return NewFramerSize(MaxSentenceLen)
}

// NewFramerSize returns a Framer that drops sentences longer than max bytes.
func NewFramerSize(max int) *Framer {
	if max <= 0 {
		max = MaxSentenceLen
	}
	return &Framer{state: WaitingForLineEnd, buf: make([]byte, 0, max), max: max}
}

// State reports the current framer state.
func (f *Framer) State() FramerState { return f.state }

// Overflows reports how many sentences were dropped for exceeding the
// maximum length.
func (f *Framer) Overflows() uint64 { return f.overflows }

// Feed processes one byte. When b terminates a captured sentence, Feed returns
// the sentence body (without `$` or terminator) and true. The returned slice
// is only valid until the next call to Feed.
func (f *Framer) Feed(b byte) ([]byte, bool) {
	if b == '\n' || b == '\r' {
		captured := f.state == Capturing
		f.state = WaitingForDollar
		if captured {
			return f.buf, true
		}
		return nil, false
	}

	switch f.state {
	case WaitingForDollar:
		f.buf = f.buf[:0]
		if b == '$' {
			f.state = Capturing
		} else {
			f.state = WaitingForLineEnd
		}
	case Capturing:
		if len(f.buf) >= f.max {
			f.buf = f.buf[:0]
			f.overflows++
			f.state = WaitingForLineEnd
			return nil, false
		}
		f.buf = append(f.buf, b)
	}
	return nil, false
}

// FeedBytes feeds p byte-by-byte and calls emit for every completed sentence.
// emit must copy the sentence if it keeps it.
func (f *Framer) FeedBytes(p []byte, emit func(sentence []byte)) {
	for _, b := range p {
		if s, ok := f.Feed(b); ok && emit != nil {
			emit(s)
		}
	}
}
