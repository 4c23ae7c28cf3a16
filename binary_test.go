package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty file is text", nil, false},
		{"plain source", []byte("package main\n\nfunc main() {}\n"), false},
		{"utf-8 text", []byte("héllo wörld ✓\n"), false},
		{"escape sequences", []byte("\x1b[31mred\x1b[0m\r\n\t\f"), false},
		{"nul byte", []byte("abc\x00def"), true},
		{"png header", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), true},
		{"mostly control bytes", []byte("\x01\x02\x03\x04ab"), true},
		{"invalid utf-8", []byte("caf\xe9 au lait"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBinary(tt.data))
		})
	}
}

func TestIsBinary_ControlRatioThreshold(t *testing.T) {
	// 30 control bytes out of 100 sits on the threshold and stays text.
	atLimit := append(bytes.Repeat([]byte{0x01}, 30), bytes.Repeat([]byte("a"), 70)...)
	assert.False(t, isBinary(atLimit))

	overLimit := append(bytes.Repeat([]byte{0x01}, 31), bytes.Repeat([]byte("a"), 69)...)
	assert.True(t, isBinary(overLimit))
}

func TestIsBinary_OnlyProbesLeadingBytes(t *testing.T) {
	data := append(bytes.Repeat([]byte("a"), binaryProbeSize), 0)
	assert.False(t, isBinary(data), "NUL past the probe window is not inspected")

	data = append(bytes.Repeat([]byte("a"), binaryProbeSize), 0xff)
	assert.True(t, isBinary(data), "invalid UTF-8 anywhere still fails decoding")
}
