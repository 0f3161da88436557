// Package gps reads NMEA from a serial GPS receiver and sets the host clock
// from the first valid RMC sentence.
//
// It owns the I/O around the internal/nmea pipeline:
// - open the serial device in raw mode at a fixed bit rate
// - feed received bytes through the sentence framer and RMC parser
// - hand the first decoded timestamp to a clock.Setter
package gps
