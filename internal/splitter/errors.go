package splitter

import "fmt"

// UnterminatedQuoteError reports a quoted literal or identifier still open
// at end of input. Offset/Line/Column locate the opening quote character.
type UnterminatedQuoteError struct {
	Quote  byte // The quote character that opened the literal: ' " or `
	Offset int
	Line   int
	Column int
}

func (e *UnterminatedQuoteError) Error() string {
	return fmt.Sprintf("%d:%d: unterminated %c-quoted literal (opened at offset %d)",
		e.Line, e.Column, e.Quote, e.Offset)
}

// UnterminatedCommentError reports a /* block comment still open at end of
// input. Offset/Line/Column locate the opening "/*".
type UnterminatedCommentError struct {
	Offset int
	Line   int
	Column int
}

func (e *UnterminatedCommentError) Error() string {
	return fmt.Sprintf("%d:%d: unterminated block comment (opened at offset %d)",
		e.Line, e.Column, e.Offset)
}

// EmptyDelimiterError reports a DELIMITER directive with no argument token
// before end of line or end of input, or an attempt to install an empty
// string as the active delimiter. Offset/Line/Column locate the directive
// keyword (or are zero when the delimiter was supplied programmatically).
type EmptyDelimiterError struct {
	Offset int
	Line   int
	Column int
}

func (e *EmptyDelimiterError) Error() string {
	return fmt.Sprintf("%d:%d: DELIMITER directive requires a non-empty argument",
		e.Line, e.Column)
}

// ErrorPosition returns the line and column carried by a splitter error,
// or ok=false for any other error.
func ErrorPosition(err error) (line, column int, ok bool) {
	switch e := err.(type) {
	case *UnterminatedQuoteError:
		return e.Line, e.Column, true
	case *UnterminatedCommentError:
		return e.Line, e.Column, true
	case *EmptyDelimiterError:
		return e.Line, e.Column, true
	}
	return 0, 0, false
}
