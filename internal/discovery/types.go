package discovery

import "time"

// DiscoveredFile represents a SQL script discovered during filesystem traversal
type DiscoveredFile struct {
	Path         string    // Absolute path to file
	RelativePath string    // Path relative to search root
	Type         FileType  // Schema, data, or generic script
	ModTime      time.Time // Last modification time
}

// FileType indicates the role of a script, derived from its filename
type FileType int

const (
	FileTypeSchema FileType = iota // Matches *_schema.sql — DDL, runs first
	FileTypeData                   // Matches *_data.sql — seed data, runs second
	FileTypeScript                 // Any other .sql file
)

// String returns a string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeSchema:
		return "schema"
	case FileTypeData:
		return "data"
	case FileTypeScript:
		return "script"
	default:
		return "unknown"
	}
}
