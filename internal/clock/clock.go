// Package clock applies a decoded GPS timestamp to the host clock.
package clock

import (
	"log"
	"time"
)

// Setter sets the wall clock to an absolute instant.
type Setter interface {
	Set(t time.Time) error
}

// SetterFunc adapts a function to a Setter.
type SetterFunc func(t time.Time) error

func (f SetterFunc) Set(t time.Time) error { return f(t) }

// DryRun logs the instant it would have set and never touches the clock.
type DryRun struct {
	Log *log.Logger
}

func (d DryRun) Set(t time.Time) error {
	l := d.Log
	if l == nil {
		l = log.Default()
	}
	l.Printf("clock dry-run would set time=%s", t.UTC().Format(time.RFC3339Nano))
	return nil
}
