//go:build unix

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// System sets the host clock with settimeofday(2). It normally requires root
// or CAP_SYS_TIME.
type System struct{}

func (System) Set(t time.Time) error {
	tv := toTimeval(t)
	return unix.Settimeofday(&tv)
}

// toTimeval splits t into whole seconds and a microsecond remainder.
func toTimeval(t time.Time) unix.Timeval {
	return unix.NsecToTimeval(t.Truncate(time.Microsecond).UnixNano())
}
