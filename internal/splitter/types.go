package splitter

// StatementSpan is one executable statement extracted from a script.
// Text is trimmed of leading/trailing whitespace; the offsets locate the
// trimmed text inside the original script, so script[StartOffset:EndOffset]
// == Text always holds.
type StatementSpan struct {
	Text        string // Trimmed statement text
	StartOffset int    // Byte offset of the first character of Text
	EndOffset   int    // Byte offset one past the last character of Text
	StartLine   int    // 1-indexed line of StartOffset
	EndLine     int    // 1-indexed line of the last character
}

// Directive records a consumed DELIMITER directive. Directives are client
// instructions, never sent to the server, but their source locations are
// kept for diagnostics.
type Directive struct {
	Delimiter   string // The new active delimiter token
	StartOffset int    // Byte offset of the DELIMITER keyword
	EndOffset   int    // Byte offset one past the delimiter token
	Line        int    // 1-indexed line of the keyword
}

// StatementType classifies an emitted statement by its leading keyword.
// Classification is advisory (used by reports); it never influences where
// statement boundaries are placed.
type StatementType int

const (
	StmtUnknown StatementType = iota
	StmtRoutine               // CREATE PROCEDURE/FUNCTION/TRIGGER/EVENT
	StmtDDL                   // Other CREATE, ALTER, DROP, TRUNCATE, RENAME
	StmtDML                   // SELECT, INSERT, UPDATE, DELETE, REPLACE
	StmtOther                 // Anything else (SET, USE, SHOW, ...)
)

// String returns a string representation of StatementType
func (st StatementType) String() string {
	switch st {
	case StmtRoutine:
		return "routine"
	case StmtDDL:
		return "ddl"
	case StmtDML:
		return "dml"
	case StmtOther:
		return "other"
	default:
		return "unknown"
	}
}
