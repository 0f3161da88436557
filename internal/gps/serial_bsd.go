//go:build darwin || freebsd || netbsd || openbsd

package gps

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// OpenSerial opens a GPS serial device read-only in raw mode.
//
// BSD termios keeps the bit rate in Ispeed/Ospeed as the plain rate, so no
// speed table is needed beyond SupportedBaud.
func OpenSerial(path string, baud int) (io.ReadCloser, error) {
	if !SupportedBaud(baud) {
		return nil, fmt.Errorf("invalid baud rate: %d", baud)
	}

	flag := unix.O_RDONLY | unix.O_NOCTTY | unix.O_NONBLOCK | unix.O_CLOEXEC
	fd, err := unix.Open(path, flag, 0)
	if err != nil {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			_ = unix.Close(fd)
		}
	}()

	t, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr: %w", err)
	}

	// Raw mode: no echo, no line editing, 8-bit clean.
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.ICRNL | unix.INPCK | unix.IXON
	t.Oflag = 0
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8

	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	setSpeed(&t.Ispeed, baud)
	setSpeed(&t.Ospeed, baud)

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, t); err != nil {
		return nil, fmt.Errorf("tcsetattr: %w", err)
	}

	f := os.NewFile(uintptr(fd), path)
	if f == nil {
		return nil, fmt.Errorf("os.NewFile failed")
	}
	ok = true
	return f, nil
}

// setSpeed stores baud in a speed_t field, whose width differs per OS.
func setSpeed[T ~int32 | ~uint32 | ~uint64](field *T, baud int) {
	*field = T(baud)
}
