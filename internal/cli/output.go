package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"datamapper/internal/diagnostic"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure
	ExitCommandError = 2 // Command error (unreadable input, unreachable service, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// Response is the JSON envelope of every command.
type Response struct {
	Status      string            `json:"status"` // "ok" or "error"
	Data        any               `json:"data,omitempty"`
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
}

// DiagnosticEntry is the JSON form of one diagnostic.
type DiagnosticEntry struct {
	Level   string `json:"level"`
	Scope   string `json:"scope,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

func newFormatter(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w, Verbose: opts.Verbose}
}

// Emit writes data. In text mode text renders it.
func (f *OutputFormatter) Emit(data any, diags *diagnostic.Diagnostics, text func(io.Writer)) error {
	if f.Format == "json" {
		resp := Response{Status: "ok", Data: data}
		if diags != nil {
			if diags.HasErrors() {
				resp.Status = "error"
			}

			for _, d := range diags.All() {
				resp.Diagnostics = append(resp.Diagnostics, DiagnosticEntry{
					Level:   d.Level.String(),
					Scope:   string(d.Scope),
					Code:    d.Code,
					Message: d.Message,
					Ref:     d.Ref,
				})
			}
		}

		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")

		return enc.Encode(resp)
	}

	if text != nil {
		text(f.Writer)
	}

	if diags != nil {
		for _, d := range diags.All() {
			if d.Level == diagnostic.LevelDebug && !f.Verbose {
				continue
			}

			fmt.Fprintln(f.Writer, d.String())
		}
	}

	return nil
}
