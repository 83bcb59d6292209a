package tui

import (
	"io"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for user-facing command output.
type Output interface {
	// Heading prints a section heading such as "RUN  Install plugin".
	Heading(msg string)
	// Line prints text exactly as given.
	Line(msg string)
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message, with a suggested action when one is known.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Table prints tabular data with aligned columns.
	Table(headers []string, rows [][]string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
}

// NewOutput returns a JSONOutput for the json format and a TTYOutput otherwise.
func NewOutput(w io.Writer, format string) Output {
	if strings.EqualFold(format, FormatJSON) {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
