package database

import (
	"context"
	"database/sql"
)

// Session pins a single connection for the duration of one script so that
// session state established by earlier statements (USE, SET, temporary
// tables, user variables) is visible to the later ones. Statements from
// one script must never be spread across pool connections.
type Session struct {
	conn *sql.Conn
}

// NewSession acquires a dedicated connection from the pool
func (db *DB) NewSession(ctx context.Context) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{conn: conn}, nil
}

// Exec sends one statement to the server and returns the affected row
// count (0 for statements that do not report one).
func (s *Session) Exec(ctx context.Context, statement string) (int64, error) {
	res, err := s.conn.ExecContext(ctx, statement)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		// Some statements legitimately carry no row count.
		return 0, nil
	}
	return rows, nil
}

// Close returns the pinned connection to the pool
func (s *Session) Close() error {
	return s.conn.Close()
}
