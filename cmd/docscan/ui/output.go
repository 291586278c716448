package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	successLabel = color.New(color.FgGreen, color.Bold)
	warnLabel    = color.New(color.FgYellow)
	keyLabel     = color.New(color.FgCyan)
)

// Init applies the global color setting.
func Init(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Error prints err and an optional hint.
func Error(w io.Writer, err error, hint string) {
	errorLabel.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
	if hint != "" {
		warnLabel.Fprintf(w, "  %s\n", hint)
	}
}

// Success prints a green check line.
func Success(w io.Writer, format string, args ...any) {
	successLabel.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

// Warn prints a yellow note.
func Warn(w io.Writer, format string, args ...any) {
	warnLabel.Fprintf(w, "! "+format+"\n", args...)
}

// Field prints an aligned key/value line.
func Field(w io.Writer, key string, value any) {
	keyLabel.Fprintf(w, "  %-9s", key+":")
	fmt.Fprintf(w, " %v\n", value)
}
