package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(false, false, &buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "INFO\tshown")

	buf.Reset()
	logger = newLogger(true, true, &buf)
	logger.Info("quiet wins")
	logger.Warn("still warned")
	assert.NotContains(t, buf.String(), "quiet wins")
	assert.Contains(t, buf.String(), "WARN\tstill warned")

	buf.Reset()
	newLogger(true, false, &buf).Debug("debug on")
	assert.Contains(t, buf.String(), "debug on")
}
