package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"q.log/twophase/matrix"
)

// Process exit statuses. A certificate that fails its check is a solver
// failure; anything that stops a command from running at all is a command
// error.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// Codes carried in error reports.
const (
	ErrCodeGeneric = "E001" // server or other runtime failure
	ErrCodeInput   = "E002" // unreadable problem, matrix or basis
	ErrCodeSolve   = "E003" // the engine rejected the model
	ErrCodeVerify  = "E004" // certificate check failed
)

// ExitError carries the process exit status for a failed command.
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

// WrapExitError attaches an exit status to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps err to a process exit status. Errors without an
// ExitError in their chain exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes reports either as plain text or wrapped in a
// CLIResponse envelope.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data. Text output relies on data's String method; the
// solve and phase1 commands print their own text reports instead.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return err
}

// fail reports err under code and returns it with the given exit status.
func (f *OutputFormatter) fail(exit int, code, message string, err error) error {
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err))
	return WrapExitError(exit, message, err)
}

// formatNumber prints v with ten significant digits, mapping values within
// matrix.Epsilon of zero to 0.
func formatNumber(v float64) string {
	if math.Abs(v) < matrix.Epsilon {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = formatNumber(x)
	}
	return strings.Join(parts, " ")
}

func formatInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
