package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSpinner(msg string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := NewSpinner(msg)
	s.out = &buf
	s.interval = time.Millisecond
	return s, &buf
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	s, buf := testSpinner("probing…")
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "probing…")
	// The line ends cleared, cursor back at column zero.
	assert.True(t, out[len(out)-1] == '\r')
}

func TestSpinnerStopWith(t *testing.T) {
	s, buf := testSpinner("waiting")
	s.Start()
	s.StopWith("done")
	assert.Contains(t, buf.String(), "done\n")
}
