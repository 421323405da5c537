package display

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
)

// ExportProgress reports a playlist export: a header naming the target and a
// completion line with the entry count.
type ExportProgress struct {
	printer *Printer
	format  string
	target  string
}

// NewExportProgress creates a progress reporter for writing target in format.
func (p *Printer) NewExportProgress(format, target string) *ExportProgress {
	return &ExportProgress{printer: p, format: format, target: target}
}

// Start displays the header message
func (e *ExportProgress) Start(entries int) {
	fmt.Fprintf(e.printer.out, "Exporting %d entries as %s:\n", entries, e.format)
	fmt.Fprintf(e.printer.out, "%s\n", e.printer.paint(color.FgCyan).Sprintf("  -> %s", filepath.Base(e.target)))
}

// Complete displays success message with green checkmark
func (e *ExportProgress) Complete(entries int) {
	e.printer.Success("Wrote %d entries to %s", entries, e.target)
}
