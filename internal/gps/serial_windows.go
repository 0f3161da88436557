//go:build windows

package gps

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"
)

// OpenSerial opens a GPS serial device at 8N1 with blocking single-byte reads.
func OpenSerial(path string, baud int) (io.ReadCloser, error) {
	if !SupportedBaud(baud) {
		return nil, fmt.Errorf("invalid baud rate: %d", baud)
	}
	return serial.Open(serial.OpenOptions{
		PortName:              path,
		BaudRate:              uint(baud),
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       1,
		InterCharacterTimeout: 0,
	})
}
