package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates the blocking phases of a command (RPC probing, waiting
// for a receipt) on one terminal line. The full-screen views run their own
// bubbletea loop and never use it.
type Spinner struct {
	msg      string
	out      io.Writer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a spinner writing to stdout.
func NewSpinner(msg string) *Spinner {
	return &Spinner{
		msg:      msg,
		out:      os.Stdout,
		interval: 80 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the animation. Each spinner starts at most once.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	s.draw(frame)
	for {
		select {
		case <-s.stop:
			// Clear the line so the result prints clean.
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
			return
		case <-ticker.C:
			frame++
			s.draw(frame)
		}
	}
}

func (s *Spinner) draw(frame int) {
	glyph := StyleChain.Render(spinnerFrames[frame%len(spinnerFrames)])
	fmt.Fprintf(s.out, "\r%s %s", glyph, s.msg)
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}

// StopWith halts the animation and prints a closing line in its place.
func (s *Spinner) StopWith(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, msg)
}
