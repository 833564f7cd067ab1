/*
 * split.go
 *
 * Statement assembler and DELIMITER directive recognizer.
 *
 * A MySQL script is a sequence of statements separated by the active
 * delimiter, which starts as ";" and can be changed mid-script by the
 * client-side directive
 *
 *	DELIMITER <token>
 *
 * The directive exists so that scripts defining stored routines can pick a
 * terminator that does not collide with the semicolons inside the routine
 * body. It is consumed by the client and never sent to the server.
 *
 * The assembler drives a single left-to-right pass over the script. At
 * every plain-text position it first checks for a directive (only at a
 * statement-start position, i.e. before any statement content has been
 * buffered), then for the active delimiter, and otherwise lets the scanner
 * consume the next unit. Delimiter matching is exact and greedy: the first
 * occurrence wins, with no lookahead — as in the mysql client, it is the
 * script author's job to pick a delimiter that does not collide with
 * statement content.
 *
 * Whitespace and comments between statements are discarded; comments
 * embedded inside a statement are preserved verbatim (the server accepts
 * them). A trailing statement with no terminator is still emitted: scripts
 * routinely end with "DELIMITER ;" and a final unterminated statement.
 */
package splitter

import (
	"io"
	"strings"
)

// DefaultDelimiter is the active delimiter before any DELIMITER directive.
const DefaultDelimiter = ";"

// directiveKeyword is matched case-insensitively as a whole token.
const directiveKeyword = "DELIMITER"

// Splitter is a single-pass, non-restartable statement iterator over one
// script. It holds no global state; independent Splitters are safe to use
// from concurrent goroutines.
type Splitter struct {
	scan scanState

	delim     string // ActiveDelimiter
	stmtStart int    // Offset where the pending statement begins
	atStart   bool   // True until non-whitespace, non-comment content is buffered

	directives []Directive
	err        error // Sticky failure
	done       bool
}

// NewSplitter returns a Splitter over script with the default ";" delimiter.
func NewSplitter(script string) *Splitter {
	return &Splitter{
		scan:    scanState{src: script, state: StatePlain},
		delim:   DefaultDelimiter,
		atStart: true,
	}
}

// NewSplitterWithDelimiter returns a Splitter whose initial active
// delimiter is delim instead of ";". An empty delimiter would either never
// match or match everywhere, so it is rejected.
func NewSplitterWithDelimiter(script, delim string) (*Splitter, error) {
	if delim == "" {
		return nil, &EmptyDelimiterError{Line: 1, Column: 1}
	}
	sp := NewSplitter(script)
	sp.delim = delim
	return sp, nil
}

// Split splits script into its ordered statements. On failure the
// statements closed before the error point are still returned, together
// with the consumed directives, so callers can report progress.
func Split(script string) ([]StatementSpan, []Directive, error) {
	sp := NewSplitter(script)
	var spans []StatementSpan
	for {
		span, err := sp.Next()
		if err == io.EOF {
			return spans, sp.Directives(), nil
		}
		if err != nil {
			return spans, sp.Directives(), err
		}
		spans = append(spans, span)
	}
}

// ActiveDelimiter returns the delimiter currently in effect.
func (sp *Splitter) ActiveDelimiter() string {
	return sp.delim
}

// Directives returns the DELIMITER directives consumed so far, in script
// order.
func (sp *Splitter) Directives() []Directive {
	return sp.directives
}

// Pos returns the current byte offset of the scan cursor.
func (sp *Splitter) Pos() int {
	return sp.scan.pos
}

// Next returns the next statement in the script. It returns io.EOF when
// the script is exhausted and a splitter error (UnterminatedQuoteError,
// UnterminatedCommentError, EmptyDelimiterError) if the script is
// malformed. Errors are sticky: once Next fails, it keeps returning the
// same error.
func (sp *Splitter) Next() (StatementSpan, error) {
	if sp.err != nil {
		return StatementSpan{}, sp.err
	}
	if sp.done {
		return StatementSpan{}, io.EOF
	}

	s := &sp.scan
	for s.pos < len(s.src) {
		if s.state != StatePlain {
			s.step()
			continue
		}

		if sp.atStart {
			// Discard top-level whitespace so the pending statement
			// starts at real content.
			if isSpace(s.src[s.pos]) {
				s.advance(1)
				sp.stmtStart = s.pos
				continue
			}

			// Directive recognition takes precedence over delimiter
			// matching, but only here: a DELIMITER token later in a
			// statement is ordinary text.
			matched, err := sp.matchDirective()
			if err != nil {
				sp.err = err
				return StatementSpan{}, err
			}
			if matched {
				continue
			}

			// An immediate delimiter closes an empty statement, which
			// is skipped rather than emitted.
			if strings.HasPrefix(s.src[s.pos:], sp.delim) {
				s.advance(len(sp.delim))
				sp.stmtStart = s.pos
				continue
			}

			// Discard top-level comments between statements.
			if sp.startsComment() {
				if err := sp.skipComment(); err != nil {
					sp.err = err
					return StatementSpan{}, err
				}
				sp.stmtStart = s.pos
				continue
			}

			// Statement content begins here.
			sp.atStart = false
			continue
		}

		if strings.HasPrefix(s.src[s.pos:], sp.delim) {
			span, ok := sp.closeStatement(s.pos)
			s.advance(len(sp.delim))
			sp.stmtStart = s.pos
			sp.atStart = true
			if ok {
				return span, nil
			}
			continue
		}

		s.step()
	}

	// End of input: anything still open is a hard failure.
	switch s.state {
	case StateSingleQuoted, StateDoubleQuoted, StateBacktickQuoted:
		sp.err = &UnterminatedQuoteError{
			Quote:  quoteChar(s.state),
			Offset: s.openOff,
			Line:   lineNumber(s.src, s.openOff),
			Column: columnNumber(s.src, s.openOff),
		}
		return StatementSpan{}, sp.err
	case StateBlockComment:
		sp.err = &UnterminatedCommentError{
			Offset: s.openOff,
			Line:   lineNumber(s.src, s.openOff),
			Column: columnNumber(s.src, s.openOff),
		}
		return StatementSpan{}, sp.err
	}

	sp.done = true

	// A trailing statement with no terminator is still a statement.
	if !sp.atStart {
		if span, ok := sp.closeStatement(len(s.src)); ok {
			return span, nil
		}
	}
	return StatementSpan{}, io.EOF
}

// closeStatement trims the pending buffer [sp.stmtStart, end) and builds a
// span for it. ok is false when the trimmed text is empty.
func (sp *Splitter) closeStatement(end int) (StatementSpan, bool) {
	src := sp.scan.src
	b, e := sp.stmtStart, end
	for b < e && isSpace(src[b]) {
		b++
	}
	for e > b && isSpace(src[e-1]) {
		e--
	}
	if b == e {
		return StatementSpan{}, false
	}
	return StatementSpan{
		Text:        src[b:e],
		StartOffset: b,
		EndOffset:   e,
		StartLine:   lineNumber(src, b),
		EndLine:     lineNumber(src, e-1),
	}, true
}

/*
 * matchDirective recognizes "DELIMITER <token>" at the current position.
 * The keyword is matched case-insensitively as a whole token: it must be
 * followed by whitespace or end of input, so identifiers like DELIMITERS
 * are left alone. The argument is the longest run of non-whitespace
 * characters after horizontal whitespace; it is installed as the active
 * delimiter without further interpretation, so tokens like "//", "$$" or
 * ";" all work. Anything after the token on the same line is the start of
 * the next statement under the new delimiter.
 *
 * A directive whose argument is missing (only whitespace or end of input
 * after the keyword) fails with EmptyDelimiterError at the keyword's
 * position.
 */
func (sp *Splitter) matchDirective() (bool, error) {
	s := &sp.scan
	rest := s.src[s.pos:]
	if len(rest) < len(directiveKeyword) ||
		!strings.EqualFold(rest[:len(directiveKeyword)], directiveKeyword) {
		return false, nil
	}
	if len(rest) > len(directiveKeyword) && !isSpace(rest[len(directiveKeyword)]) {
		// Prefix of a longer identifier, not the keyword.
		return false, nil
	}

	dirOff := s.pos
	s.advance(len(directiveKeyword))
	for s.pos < len(s.src) && isHorizontalSpace(s.src[s.pos]) {
		s.advance(1)
	}
	// Any remaining whitespace byte means the argument is missing: the
	// token scan below stops at whitespace, and an empty string must
	// never become the active delimiter.
	if s.pos >= len(s.src) || isSpace(s.src[s.pos]) {
		return false, &EmptyDelimiterError{
			Offset: dirOff,
			Line:   lineNumber(s.src, dirOff),
			Column: columnNumber(s.src, dirOff),
		}
	}

	argStart := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) {
		s.advance(1)
	}

	sp.delim = s.src[argStart:s.pos]
	sp.directives = append(sp.directives, Directive{
		Delimiter:   sp.delim,
		StartOffset: dirOff,
		EndOffset:   s.pos,
		Line:        lineNumber(s.src, dirOff),
	})
	sp.stmtStart = s.pos
	return true, nil
}

// startsComment reports whether a comment opens at the current plain-text
// position.
func (sp *Splitter) startsComment() bool {
	s := &sp.scan
	ch := s.src[s.pos]
	switch {
	case ch == '#':
		return true
	case ch == '-' && s.peek(1) == '-' && lineCommentSpacer(s.peek(2), s.pos+2 >= len(s.src)):
		return true
	case ch == '/' && s.peek(1) == '*':
		return true
	}
	return false
}

// skipComment consumes an entire top-level comment. A block comment left
// open at end of input is a failure; a line comment ending at end of input
// is fine.
func (sp *Splitter) skipComment() error {
	s := &sp.scan
	s.step()
	for s.pos < len(s.src) && s.state != StatePlain {
		s.step()
	}
	if s.state == StateBlockComment {
		return &UnterminatedCommentError{
			Offset: s.openOff,
			Line:   lineNumber(s.src, s.openOff),
			Column: columnNumber(s.src, s.openOff),
		}
	}
	s.state = StatePlain
	return nil
}

// quoteChar maps a quoted LexState to its quote character.
func quoteChar(state LexState) byte {
	switch state {
	case StateDoubleQuoted:
		return '"'
	case StateBacktickQuoted:
		return '`'
	default:
		return '\''
	}
}
