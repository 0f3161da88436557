package gps

// BaudRates lists the bit rates OpenSerial accepts.
var BaudRates = []int{50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400}

// SupportedBaud reports whether baud is in BaudRates.
func SupportedBaud(baud int) bool {
	for _, b := range BaudRates {
		if b == baud {
			return true
		}
	}
	return false
}
