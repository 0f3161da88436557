//go:build !unix

package clock

import (
	"fmt"
	"time"
)

// System is unsupported on this platform.
type System struct{}

func (System) Set(t time.Time) error {
	return fmt.Errorf("setting the system clock is not supported on this platform")
}
