package consolecaptor

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nethoundsh/consolecaptor/internal/lines"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...any) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, a...)
	}
}

func (ew *errWriter) println(a ...any) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintln(ew.w, a...)
	}
}

type reportColors struct {
	header *color.Color
	empty  *color.Color
}

// newReportColors decides per report instead of relying on color.NoColor,
// which only reflects whether stdout was a terminal at startup.
func newReportColors(enabled bool) reportColors {
	rc := reportColors{
		header: color.New(color.FgHiBlue, color.Bold),
		empty:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{rc.header, rc.empty} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return rc
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteReport writes both captured streams to w, one header per stream
// followed by its lines as StandardOutput/ErrorOutput would return them.
// Headers are colored when w is a terminal.
func (c *Captor) WriteReport(w io.Writer) error {
	if c.closed {
		return ErrClosed
	}
	colors := newReportColors(isTerminal(w))
	ew := &errWriter{w: w}
	for _, s := range []Stream{Stdout, Stderr} {
		text, err := c.Text(s)
		if err != nil {
			return err
		}
		writeStreamReport(ew, colors, s, text, lines.Split(text, c.opts.policy()))
	}
	return ew.err
}

func writeStreamReport(ew *errWriter, colors reportColors, s Stream, text string, got []string) {
	unit := "lines"
	if len(got) == 1 {
		unit = "line"
	}
	ew.println(colors.header.Sprintf("=== captured %s: %d %s, %s", s, len(got), unit, humanize.Bytes(uint64(len(text)))))
	if text == "" {
		ew.println("    " + colors.empty.Sprint("(no output)"))
		return
	}
	for _, line := range got {
		ew.printf("    %s\n", line)
	}
}
