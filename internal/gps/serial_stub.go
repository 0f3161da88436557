//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package gps

import (
	"fmt"
	"io"
)

func OpenSerial(path string, baud int) (io.ReadCloser, error) {
	return nil, fmt.Errorf("gps serial not supported on this platform")
}
