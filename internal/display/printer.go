package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes user-facing messages, colored when the target is a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer for f, enabling colors when f is a terminal
// and NO_COLOR is unset.
func NewPrinter(f *os.File) *Printer {
	return NewPrinterWithColor(f, IsTerminal(f) && os.Getenv("NO_COLOR") == "")
}

// NewPrinterWithColor creates a Printer with explicit color control.
func NewPrinterWithColor(w io.Writer, enableColor bool) *Printer {
	return &Printer{out: w, color: enableColor}
}

// IsTerminal reports whether f is attached to a terminal (including Cygwin/MSYS ptys).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Banner prints "Random File Opener v<version>".
func (p *Printer) Banner(version string) {
	p.paint(color.Bold, color.FgHiWhite).Fprintf(p.out, "Random File Opener v%s\n", version)
}

// Controls prints the key bindings for the selected mode.
func (p *Printer) Controls(playlist bool) {
	key := p.paint(color.FgCyan)
	if playlist {
		fmt.Fprintf(p.out, "Playlist mode: %s previous, %s next, %s quit\n",
			key.Sprint("Left/Up"), key.Sprint("Right/Down"), key.Sprint("Esc/q"))
		return
	}
	fmt.Fprintf(p.out, "Random mode: %s open another, %s quit\n",
		key.Sprint("Enter/Space"), key.Sprint("Esc/q"))
}

// Warn prints a warning in yellow.
func (p *Printer) Warn(w Warning) {
	fmt.Fprint(p.out, w.render(p.color))
}

// Success prints a green check mark followed by the message.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(color.FgGreen).Sprint("✓"), fmt.Sprintf(format, args...))
}
