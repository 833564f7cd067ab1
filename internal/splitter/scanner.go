/*
 * scanner.go
 *
 * Lexical state machine for MySQL script text.
 *
 * The scanner classifies every byte position of a script into exactly one
 * LexState: ordinary statement text, one of the three quoted forms MySQL
 * knows ('…', "…", `…`), or one of its comment forms (-- …, # …, and
 * non-nesting /* … * / block comments). It exists so that the statement
 * assembler in split.go can ask a single question — "is this position
 * plain text?" — before treating anything at that position as a statement
 * terminator or a DELIMITER directive. Terminator-shaped bytes inside a
 * literal or a comment are inert.
 *
 * The rules follow the documented mysql command-line client behavior:
 *
 *   - Backslash escapes the next character inside '…' and "…" strings;
 *     doubled quotes ('' and "") are escaped literal quotes.
 *   - Backtick identifiers have no backslash escaping; only a doubled
 *     backtick escapes a literal backtick.
 *   - "--" starts a comment only when followed by whitespace or end of
 *     input ("--x" is an expression, e.g. SELECT 5--1). "#" always starts
 *     a line comment. Line comments run to the end of the line.
 *   - Block comments do not nest; a "/*" seen inside one is ordinary
 *     comment text (nested comments are not supported; MySQL manual,
 *     "Comments").
 *
 * The scanner advances one unit at a time (two bytes for escape sequences
 * and doubled quotes) and never rewinds. It records where the current
 * quote or block comment opened so that an unterminated construct can be
 * reported at its opening position, not at end of input.
 */
package splitter

// LexState is the lexical classification of the current scan position.
type LexState int

const (
	StatePlain          LexState = iota // Ordinary statement text
	StateSingleQuoted                   // Inside '…'
	StateDoubleQuoted                   // Inside "…"
	StateBacktickQuoted                 // Inside `…`
	StateLineComment                    // Inside -- … or # … (to end of line)
	StateBlockComment                   // Inside /* … */
)

// String returns a string representation of LexState
func (ls LexState) String() string {
	switch ls {
	case StatePlain:
		return "plain"
	case StateSingleQuoted:
		return "single-quoted"
	case StateDoubleQuoted:
		return "double-quoted"
	case StateBacktickQuoted:
		return "backtick-quoted"
	case StateLineComment:
		return "line-comment"
	case StateBlockComment:
		return "block-comment"
	default:
		return "invalid"
	}
}

// scanState is the cursor of a single split pass: the position into the
// script plus the active lexical state. One instance belongs to exactly
// one Splitter, so concurrent splits never share scanner state.
type scanState struct {
	src   string
	pos   int
	state LexState

	// Offset of the opening quote or "/*" of the construct currently
	// being scanned. Only meaningful outside StatePlain/StateLineComment.
	openOff int
}

// peek returns the byte at pos+offset, or 0 past end of input.
func (s *scanState) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

// advance moves the cursor forward n bytes, clamped to end of input.
func (s *scanState) advance(n int) {
	s.pos += n
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// open transitions into a quoted or comment state, remembering where the
// construct began for error reporting.
func (s *scanState) open(state LexState) {
	s.state = state
	s.openOff = s.pos
}

/*
 * step consumes the next unit of input (one byte, or two for escape
 * sequences, doubled quotes, and two-character markers) and performs the
 * resulting state transition. Transitions are total: every byte has a
 * defined successor state in every state.
 *
 * step never decides statement boundaries or directives; the assembler
 * checks those in StatePlain before calling step.
 */
func (s *scanState) step() {
	ch := s.src[s.pos]

	switch s.state {
	case StatePlain:
		switch {
		case ch == '\'':
			s.open(StateSingleQuoted)
			s.advance(1)
		case ch == '"':
			s.open(StateDoubleQuoted)
			s.advance(1)
		case ch == '`':
			s.open(StateBacktickQuoted)
			s.advance(1)
		case ch == '#':
			s.open(StateLineComment)
			s.advance(1)
		case ch == '-' && s.peek(1) == '-' && lineCommentSpacer(s.peek(2), s.pos+2 >= len(s.src)):
			// "--" must be followed by whitespace (or end of input) to
			// start a comment; "--x" stays ordinary text.
			s.open(StateLineComment)
			s.advance(2)
		case ch == '/' && s.peek(1) == '*':
			s.open(StateBlockComment)
			s.advance(2)
		default:
			s.advance(1)
		}

	case StateSingleQuoted, StateDoubleQuoted:
		quote := byte('\'')
		if s.state == StateDoubleQuoted {
			quote = '"'
		}
		switch {
		case ch == '\\':
			// Backslash consumes the following character verbatim.
			s.advance(2)
		case ch == quote && s.peek(1) == quote:
			// Doubled quote: escaped literal quote, stay in string.
			s.advance(2)
		case ch == quote:
			s.state = StatePlain
			s.advance(1)
		default:
			s.advance(1)
		}

	case StateBacktickQuoted:
		// No backslash escaping inside `…`; only `` escapes a backtick.
		switch {
		case ch == '`' && s.peek(1) == '`':
			s.advance(2)
		case ch == '`':
			s.state = StatePlain
			s.advance(1)
		default:
			s.advance(1)
		}

	case StateLineComment:
		if ch == '\n' || ch == '\r' {
			// The comment ends before the line terminator; the newline
			// itself is consumed as plain whitespace.
			s.state = StatePlain
		}
		s.advance(1)

	case StateBlockComment:
		if ch == '*' && s.peek(1) == '/' {
			s.state = StatePlain
			s.advance(2)
		} else {
			// A "/*" in here is ordinary comment text: block comments
			// do not nest in MySQL.
			s.advance(1)
		}
	}
}

// lineCommentSpacer reports whether ch (the byte after "--") permits a
// line comment to start. atEOF covers "--" at the very end of input.
func lineCommentSpacer(ch byte, atEOF bool) bool {
	return atEOF || isSpace(ch)
}

// isSpace reports whether ch is SQL whitespace.
func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// isHorizontalSpace reports whether ch is whitespace that does not end a
// line. The DELIMITER directive argument must appear on the directive's
// own line, so only these may separate keyword and argument.
func isHorizontalSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// lineNumber returns the 1-indexed line containing byte offset off.
func lineNumber(src string, off int) int {
	if off > len(src) {
		off = len(src)
	}
	line := 1
	for i := 0; i < off; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}

// columnNumber returns the 1-indexed column of byte offset off.
func columnNumber(src string, off int) int {
	if off > len(src) {
		off = len(src)
	}
	col := 1
	for i := off - 1; i >= 0; i-- {
		if src[i] == '\n' {
			break
		}
		col++
	}
	return col
}
