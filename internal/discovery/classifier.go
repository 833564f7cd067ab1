package discovery

import (
	"path/filepath"
	"strings"
)

// ClassifyFile determines a script's role from its filename convention
func ClassifyFile(filename string) FileType {
	// Normalize to lowercase for case-insensitive comparison
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, "_schema.sql"):
		return FileTypeSchema
	case strings.HasSuffix(lower, "_data.sql"):
		return FileTypeData
	default:
		return FileTypeScript
	}
}

// ClassifyPath determines file type from a full path
func ClassifyPath(path string) FileType {
	return ClassifyFile(filepath.Base(path))
}
