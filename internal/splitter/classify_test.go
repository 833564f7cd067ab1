package splitter

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want StatementType
	}{
		{"select", "SELECT 1", StmtDML},
		{"lowercase insert", "insert into t values (1)", StmtDML},
		{"replace", "REPLACE INTO t VALUES (1)", StmtDML},
		{"create table", "CREATE TABLE t (id INT)", StmtDDL},
		{"alter", "ALTER TABLE t ADD COLUMN x INT", StmtDDL},
		{"drop", "DROP TABLE t", StmtDDL},
		{"truncate", "TRUNCATE t", StmtDDL},
		{"create procedure", "CREATE PROCEDURE p() BEGIN END", StmtRoutine},
		{"create function", "create function f() returns int return 1", StmtRoutine},
		{"create trigger", "CREATE TRIGGER trg BEFORE INSERT ON t FOR EACH ROW SET @x = 1", StmtRoutine},
		{"create event", "CREATE EVENT e ON SCHEDULE EVERY 1 DAY DO SELECT 1", StmtRoutine},
		{"create definer procedure", "CREATE DEFINER=`root`@`localhost` PROCEDURE p() BEGIN END", StmtRoutine},
		{"set", "SET @x = 1", StmtOther},
		{"use", "USE mydb", StmtOther},
		{"call", "CALL p()", StmtOther},
		{"empty", "", StmtUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStatementTypeString(t *testing.T) {
	tests := []struct {
		st   StatementType
		want string
	}{
		{StmtRoutine, "routine"},
		{StmtDDL, "ddl"},
		{StmtDML, "dml"},
		{StmtOther, "other"},
		{StmtUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
