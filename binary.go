package main

import (
	"bytes"
	"unicode/utf8"
)

const (
	// binaryProbeSize is how many leading bytes the heuristic inspects.
	binaryProbeSize = 8 * 1024
	// binaryControlRatio is the share of disallowed control bytes in the
	// probe above which a file counts as binary.
	binaryControlRatio = 0.30
)

// isBinary reports whether data looks like something other than UTF-8 text.
// A NUL byte or too many control characters in the probe window mark it as
// binary; otherwise the whole content has to decode as UTF-8.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	probe := data
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}

	control := 0
	for _, b := range probe {
		if !isTextByte(b) {
			control++
		}
	}
	if float64(control)/float64(len(probe)) > binaryControlRatio {
		return true
	}

	return !utf8.Valid(data)
}

// isTextByte accepts printable bytes, the usual whitespace controls and ESC.
// Bytes >= 0x80 are left to the UTF-8 check.
func isTextByte(b byte) bool {
	switch b {
	case '\a', '\b', '\t', '\n', '\f', '\r', 0x1b:
		return true
	}
	return b >= 0x20 && b != 0x7f
}
