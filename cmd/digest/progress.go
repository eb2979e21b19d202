package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/nguyentantai21042004/audio-digest/internal/progress"
)

// progressLine redraws a single status line for every progress event.
// A disabled line prints nothing.
type progressLine struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	drawn   bool
}

func newProgressLine(out io.Writer, enabled bool) *progressLine {
	return &progressLine{out: out, enabled: enabled}
}

func (p *progressLine) OnProgress(e progress.Event) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\r\033[2K%s", render(e))
	p.drawn = true
}

// Done terminates the status line so later output starts on a fresh line.
func (p *progressLine) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}

// isTerminal reports whether w is a terminal. Redrawing with \r only makes
// sense there; piped output would fill with escape codes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func render(e progress.Event) string {
	pct := 0.0
	if e.Total > 0 {
		pct = float64(e.Completed) / float64(e.Total) * 100
	}
	verb := "transcribing"
	if e.Stage == progress.StageFinished {
		verb = "done"
	}
	return fmt.Sprintf("Overall progress: %d/%d (%.0f%%) %s %s", e.Completed, e.Total, pct, verb, e.Label)
}
