package probe

import "bytes"

// Classify reports whether the reply carries the expected protocol marker,
// e.g. the "RTSP/1.0" status-line prefix. Pure function: identical inputs
// always yield the identical classification, no I/O, no side effects.
func Classify(marker string, response []byte) Classification {
	if bytes.Contains(response, []byte(marker)) {
		return ClassProtocolOK
	}
	return ClassProtocolMismatch
}
