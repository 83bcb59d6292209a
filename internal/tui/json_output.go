package tui

import (
	"encoding/json"
	"errors"
	"io"

	cierrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// JSONOutput writes one JSON object per line for non-interactive consumers.
type JSONOutput struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{
		w:       w,
		encoder: json.NewEncoder(w),
	}
}

// jsonMessage is the structured format for plain messages.
type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonError is the structured format for errors.
type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (o *JSONOutput) message(kind, msg string) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(jsonMessage{Type: kind, Message: msg})
}

// Heading outputs {"type":"heading","message":"..."}.
func (o *JSONOutput) Heading(msg string) { o.message("heading", msg) }

// Line outputs {"type":"line","message":"..."}.
func (o *JSONOutput) Line(msg string) { o.message("line", msg) }

// Success outputs {"type":"success","message":"..."}.
func (o *JSONOutput) Success(msg string) { o.message("success", msg) }

// Warning outputs {"type":"warning","message":"..."}.
func (o *JSONOutput) Warning(msg string) { o.message("warning", msg) }

// Info outputs {"type":"info","message":"..."}.
func (o *JSONOutput) Info(msg string) { o.message("info", msg) }

// Error outputs the error with the wrapped cause as details and the
// suggested action when one is known.
func (o *JSONOutput) Error(err error) {
	out := jsonError{
		Type:    "error",
		Message: err.Error(),
	}
	if wrapped := errors.Unwrap(err); wrapped != nil {
		out.Details = wrapped.Error()
	}
	_, out.Suggestion = cierrors.Actionable(err)

	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(out)
}

// Table outputs rows as an array of objects keyed by header.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[h] = row[i]
			} else {
				obj[h] = ""
			}
		}
		out = append(out, obj)
	}

	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(out)
}

// JSON outputs an arbitrary value as a single JSON line.
func (o *JSONOutput) JSON(v any) error {
	return o.encoder.Encode(v)
}
