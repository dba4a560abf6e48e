package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// spinnerFrames cycle through block shades, echoing the faded
// rectangles the engine leaves behind.
var spinnerFrames = []string{"░", "▒", "▓", "█", "▓", "▒"}

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 120 * time.Millisecond

// Spinner renders an animated status line on stderr while a pipeline
// run is in flight. It follows its parent context: cancellation stops
// the animation on its own, and [Spinner.Cancelled] lets the caller
// tell an interrupted run from a finished one. The status line is
// always cleared before the terminal is handed back.
type Spinner struct {
	message string
	out     io.Writer

	parent context.Context
	loop   context.Context
	halt   context.CancelFunc

	parked  chan struct{} // closed when the render goroutine exits
	started bool
	stop    sync.Once
	mu      sync.Mutex
}

// newSpinner creates a spinner that runs until stopped.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner tied to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	loop, halt := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     os.Stderr,
		parent:  ctx,
		loop:    loop,
		halt:    halt,
		parked:  make(chan struct{}),
	}
}

// Start launches the render goroutine.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.parked)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.loop.Done():
				s.clearLine()
				return
			case <-tick.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s",
					styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the status line. Calling it
// again is a no-op, and calling it without Start is safe.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.halt()
		if s.started {
			<-s.parked
		}
		s.clearLine()
	})
}

// StopWithSuccess stops the spinner and prints a success line in its
// place.
func (s *Spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	printSuccess(format, args...)
}

// StopWithError stops the spinner and prints an error line in its
// place.
func (s *Spinner) StopWithError(format string, args ...any) {
	s.Stop()
	printError(format, args...)
}

// Cancelled reports whether the parent context was cancelled, as
// opposed to the spinner being stopped by its caller.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

// clearLine erases the status line so the next write starts on a
// clean column.
func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, "\r\x1b[2K")
}
