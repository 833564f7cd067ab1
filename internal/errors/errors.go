package errors

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ScriptError represents a script file that could not be split
type ScriptError struct {
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// NewScriptError creates a new ScriptError
func NewScriptError(file string, line, column int, err error) *ScriptError {
	return &ScriptError{
		File:   file,
		Line:   line,
		Column: column,
		Err:    err,
	}
}

// ConnectionError represents MySQL connection failure
type ConnectionError struct {
	Message    string
	Suggestion string
}

func (e *ConnectionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("failed to connect to MySQL: %s (%s)", e.Message, e.Suggestion)
	}
	return fmt.Sprintf("failed to connect to MySQL: %s", e.Message)
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(message, suggestion string) *ConnectionError {
	return &ConnectionError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// ExecError represents a statement the server rejected during a script run
type ExecError struct {
	File      string
	Line      int               // Line of the failed statement within the script
	Statement string            // Trimmed statement text
	SQLError  *mysql.MySQLError // MySQL error details, when the server produced them
	Err       error             // Underlying error (always set)
}

func (e *ExecError) Error() string {
	if e.SQLError != nil {
		return fmt.Sprintf("%s:%d: statement failed: [%d] %s",
			e.File, e.Line, e.SQLError.Number, e.SQLError.Message)
	}
	return fmt.Sprintf("%s:%d: statement failed: %v", e.File, e.Line, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExecError creates a new ExecError, extracting MySQL error details when present
func NewExecError(file string, line int, statement string, err error) *ExecError {
	execErr := &ExecError{
		File:      file,
		Line:      line,
		Statement: statement,
		Err:       err,
	}
	if sqlErr, ok := err.(*mysql.MySQLError); ok {
		execErr.SQLError = sqlErr
	}
	return execErr
}
