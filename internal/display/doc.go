// Package display provides the user-facing terminal output of rfopener:
// the startup banner, the key controls for each mode, warnings, and export
// completion messages.
//
// Log lines belong to internal/logger; display covers what the user reads
// directly. Colors come from fatih/color and are enabled only when the
// output is a terminal (go-isatty), so piped output stays plain:
//
//	p := display.NewPrinter(os.Stdout)
//	p.Banner("1.0.0")
//	p.Controls(true)
//	p.Warn(display.WarnEmptyCollection(root))
//
// All output goes through an io.Writer for testability.
package display
