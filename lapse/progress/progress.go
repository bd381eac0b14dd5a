// Package progress renders the progress of a [lapse.IterTimer] as a text bar.
//
// Importing the package registers the renderer:
//
//	import _ "github.com/onegii/go-lapse/lapse/progress"
//
// On a terminal the bar is redrawn in place, otherwise every render is
// written on its own line.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/onegii/go-lapse/lapse"
)

// DefaultWidth is the number of cells of the bar.
const DefaultWidth = 30

func init() {
	lapse.RegisterProgress(func(w io.Writer) lapse.ProgressRenderer {
		return New(w)
	})
}

// Bar is a [lapse.ProgressRenderer] drawing a bar, the iteration count, the
// percentage and the estimated time of arrival.
type Bar struct {
	w     io.Writer
	tty   bool
	width int
	name  string
	fill  func(a ...interface{}) string
}

// New returns a [Bar] writing to w.
func New(w io.Writer) *Bar {
	return &Bar{
		w:     w,
		tty:   isTerminal(w),
		width: DefaultWidth,
		fill:  color.New(color.FgCyan).SprintFunc(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Begin implements [lapse.ProgressRenderer].
func (b *Bar) Begin(name string, total int) {
	b.name = name
	b.Update(0, total, 0)
}

// Update implements [lapse.ProgressRenderer].
func (b *Bar) Update(i, total int, elapsed time.Duration) {
	if total == lapse.UnknownTotal {
		b.draw(b.line("", i, total, "("+lapse.FormatDuration(elapsed)+")"), false)
		return
	}
	b.draw(b.line("", i, total, ETA(elapsed, i, total)), false)
}

// Finish implements [lapse.ProgressRenderer].
func (b *Bar) Finish(total int, elapsed time.Duration) {
	if total == lapse.UnknownTotal {
		b.draw(b.line(" done", 0, total, "("+lapse.FormatDuration(elapsed)+")"), true)
		return
	}
	b.draw(b.line(" done", total, total, "Time: "+lapse.FormatDuration(elapsed)), true)
}

func (b *Bar) line(status string, i, total int, tail string) string {
	var s strings.Builder

	s.WriteString("...")
	s.WriteString(b.name)
	s.WriteString(status)

	if total == lapse.UnknownTotal || total <= 0 {
		s.WriteString(" ")
		s.WriteString(tail)
		return s.String()
	}

	if i < 0 {
		i = 0
	}
	if i > total {
		i = total
	}
	done := b.width * i / total
	s.WriteString(" |")
	s.WriteString(b.fill(strings.Repeat("#", done)))
	s.WriteString(strings.Repeat(" ", b.width-done))
	s.WriteString("| ")
	s.WriteString(fmt.Sprintf("%d/%d (%3d%%)  %s", i, total, 100*i/total, tail))
	return s.String()
}

func (b *Bar) draw(line string, last bool) {
	if !b.tty {
		fmt.Fprintln(b.w, line)
		return
	}
	fmt.Fprint(b.w, "\r\033[K"+line)
	if last {
		fmt.Fprintln(b.w)
	}
}

// ETA returns the estimated time of arrival after i iterations out of total
// took elapsed, assuming a constant rate.
func ETA(elapsed time.Duration, i, total int) string {
	if i <= 0 || total <= 0 {
		return "ETA:  --:--:--"
	}
	eta := time.Duration(float64(elapsed)*float64(total)/float64(i)) - elapsed
	if eta < 0 {
		eta = 0
	}
	return "ETA:  " + lapse.FormatDuration(eta)
}
