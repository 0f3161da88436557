package nmea

import (
	"bytes"
	"strings"
	"testing"
)

func collect(f *Framer, in string) []string {
	var out []string
	f.FeedBytes([]byte(in), func(s []byte) {
		out = append(out, string(s))
	})
	return out
}

func TestFramer_StartsWaitingForLineEnd(t *testing.T) {
	f := NewFramer()
	if f.State() != WaitingForLineEnd {
		t.Fatalf("state=%s want %s", f.State(), WaitingForLineEnd)
	}
	// The first partial line is garbage even if it looks like a sentence.
	got := collect(f, "$GPRMC,partial*00\r\n$GPGGA,x*00\r\n")
	if len(got) != 1 || got[0] != "GPGGA,x*00" {
		t.Fatalf("got %q", got)
	}
}

func TestFramer_NoDollarNoSentences(t *testing.T) {
	inputs := []string{
		"",
		"\r\n\r\n\n\r",
		"hello world\r\nGPRMC,1,2,3*00\r\n",
		strings.Repeat("abc\n", 100),
		"\n*\n,\n#GPRMC\n",
	}
	for _, in := range inputs {
		f := NewFramer()
		if got := collect(f, in); len(got) != 0 {
			t.Fatalf("input %q: got %q want none", in, got)
		}
	}
}

func TestFramer_EmitsBodyBetweenDollarAndTerminator(t *testing.T) {
	f := NewFramer()
	got := collect(f, "junk\r\n$GPRMC,a,b*11\r\n$GPGSV,1*22\n$X\r")
	want := []string{"GPRMC,a,b*11", "GPGSV,1*22", "X"}
	if len(got) != len(want) {
		t.Fatalf("got %q want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence[%d]=%q want %q", i, got[i], want[i])
		}
	}
	if f.State() != WaitingForDollar {
		t.Fatalf("state=%s want %s", f.State(), WaitingForDollar)
	}
}

func TestFramer_EmptySentenceIsEmitted(t *testing.T) {
	f := NewFramer()
	got := collect(f, "\n$\n")
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("got %q want one empty sentence", got)
	}
}

func TestFramer_NonDollarLineIsSkipped(t *testing.T) {
	f := NewFramer()
	// The `$` in the middle of a bad line must not start a capture.
	got := collect(f, "\nxx$GPRMC*00\n$OK\n")
	if len(got) != 1 || got[0] != "OK" {
		t.Fatalf("got %q", got)
	}
}

func TestFramer_Transitions(t *testing.T) {
	cases := []struct {
		name string
		from string
		b    byte
		want FramerState
	}{
		{"LineEndAbsorbs", "x", 'a', WaitingForLineEnd},
		{"LineEndDollarIgnored", "x", '$', WaitingForLineEnd},
		{"LineEndCR", "x", '\r', WaitingForDollar},
		{"DollarRepeatedLF", "\n", '\n', WaitingForDollar},
		{"DollarStartsCapture", "\n", '$', Capturing},
		{"DollarOtherInvalidates", "\n", 'G', WaitingForLineEnd},
		{"CaptureAppends", "\n$", 'G', Capturing},
		{"CaptureEnds", "\n$G", '\n', WaitingForDollar},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFramer()
			collect(f, tc.from)
			f.Feed(tc.b)
			if f.State() != tc.want {
				t.Fatalf("state=%s want %s", f.State(), tc.want)
			}
		})
	}
}

func TestFramer_OverflowDropsAndResyncs(t *testing.T) {
	f := NewFramerSize(8)
	got := collect(f, "\n$"+strings.Repeat("A", 8))
	if len(got) != 0 || f.State() != Capturing {
		t.Fatalf("exactly max bytes should still be capturing, got %q state=%s", got, f.State())
	}

	f = NewFramerSize(8)
	in := "\n$" + strings.Repeat("A", 9) + "BBBB\r\n$GPRMC\r\n"
	got = collect(f, in)
	if len(got) != 1 || got[0] != "GPRMC" {
		t.Fatalf("got %q want only the sentence after the overflow", got)
	}
	if f.Overflows() != 1 {
		t.Fatalf("overflows=%d want 1", f.Overflows())
	}
}

func TestFramer_OverflowAtDefaultSize(t *testing.T) {
	f := NewFramer()
	long := "\n$" + strings.Repeat("9", MaxSentenceLen+1) + "\n"
	if got := collect(f, long); len(got) != 0 {
		t.Fatalf("overflowed sentence emitted (len=%d)", len(got[0]))
	}
	fits := "$" + strings.Repeat("9", MaxSentenceLen) + "\n"
	got := collect(f, fits)
	if len(got) != 1 || len(got[0]) != MaxSentenceLen {
		t.Fatalf("expected one sentence of %d bytes", MaxSentenceLen)
	}
}

func TestFramer_ByteAtATimeMatchesBulk(t *testing.T) {
	in := []byte("noise\r\n$GPRMC,1*2\r\n\r\n$GPGGA,3*4\n")
	bulk := collect(NewFramer(), string(in))

	f := NewFramer()
	var single []string
	for _, b := range in {
		if s, ok := f.Feed(b); ok {
			single = append(single, string(bytes.Clone(s)))
		}
	}
	if strings.Join(bulk, "|") != strings.Join(single, "|") {
		t.Fatalf("bulk=%q single=%q", bulk, single)
	}
}
