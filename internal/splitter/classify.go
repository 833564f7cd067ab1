package splitter

import "strings"

// routineKinds are the schema object kinds whose CREATE statements carry a
// routine body and therefore motivate DELIMITER changes in scripts.
var routineKinds = map[string]bool{
	"PROCEDURE": true,
	"FUNCTION":  true,
	"TRIGGER":   true,
	"EVENT":     true,
}

// Classify determines the statement type from its leading keywords. The
// result is advisory (report labeling); boundaries are never influenced by
// classification.
func Classify(text string) StatementType {
	words := leadingWords(text, 6)
	if len(words) == 0 {
		return StmtUnknown
	}

	switch words[0] {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "REPLACE":
		return StmtDML
	case "ALTER", "DROP", "TRUNCATE", "RENAME":
		return StmtDDL
	case "CREATE":
		// CREATE [DEFINER = user] PROCEDURE ... — look a few words in so
		// the optional DEFINER clause does not hide the object kind.
		for _, w := range words[1:] {
			if routineKinds[w] {
				return StmtRoutine
			}
		}
		return StmtDDL
	default:
		return StmtOther
	}
}

// leadingWords returns up to max uppercased keyword-shaped tokens from the
// start of text, stopping at the first token that is not a bare word.
func leadingWords(text string, max int) []string {
	var words []string
	i := 0
	for len(words) < max && i < len(text) {
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		start := i
		for i < len(text) && isWordByte(text[i]) {
			i++
		}
		if i == start {
			break
		}
		words = append(words, strings.ToUpper(text[start:i]))
		// Punctuation after a word (e.g. "=" in DEFINER=`u`@`h`) is
		// skipped so the following word is still visible.
		for i < len(text) && !isSpace(text[i]) && !isWordByte(text[i]) {
			i++
		}
	}
	return words
}

func isWordByte(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}
