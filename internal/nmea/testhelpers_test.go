package nmea

import "fmt"

const sampleRMC = "GPRMC,211321.000,A,5309.7743,N,01204.5576,W,0.17,78.41,200813,,,A"

// body returns a framed sentence body with a correct checksum appended.
func body(payload string) []byte {
	return []byte(fmt.Sprintf("%s*%02X", payload, Checksum([]byte(payload))))
}
