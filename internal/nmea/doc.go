// Package nmea turns a raw NMEA 0183 byte stream into clock timestamps.
//
// It is deliberately narrow: only the RMC sentence is understood, because it
// is the one sentence carrying both time and date.
//   - Framer reassembles `$...` sentences from an unbounded byte feed
//   - VerifyChecksum checks the XOR checksum after `*`
//   - SplitFields cracks a sentence body into comma fields
//   - Parser decodes RMC time/date into a Timestamp
package nmea
