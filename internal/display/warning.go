package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.render(true))
}

func (w Warning) render(colored bool) string {
	var b strings.Builder

	if colored {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}
		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colored {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// WarnEmptyCollection is shown when the scan collected no files.
func WarnEmptyCollection(root string) Warning {
	return Warning{
		Title:      "No files matched",
		Message:    "Nothing to open under " + root,
		Suggestion: "Check --extensions, --exclude and --depth",
	}
}

// WarnLaunchFailed is shown when the OS opener could not be started.
func WarnLaunchFailed(path string, err error) Warning {
	return Warning{
		Title:   "Could not open file",
		Message: err.Error(),
		Files:   []string{path},
	}
}
