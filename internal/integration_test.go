package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mysqlscript/mysqlrun/internal/database"
	"github.com/mysqlscript/mysqlrun/internal/discovery"
	"github.com/mysqlscript/mysqlrun/internal/runner"
	"github.com/mysqlscript/mysqlrun/internal/splitter"
	"github.com/mysqlscript/mysqlrun/internal/testutil"
	"github.com/mysqlscript/mysqlrun/pkg/types"
)

// TestEndToEndWithTestcontainers walks the whole pipeline against a real
// MySQL instance: discover a script tree, split each file, and execute the
// statements in order.
func TestEndToEndWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("Starting MySQL container...")
	dsn, cleanup := testutil.SetupMySQLContainer(t)
	defer cleanup()

	config := &types.Config{
		DSN:         dsn,
		Timeout:     time.Minute,
		Parallelism: 1,
		Format:      "text",
		Verbose:     true,
	}

	scriptDir := t.TempDir()
	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(scriptDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	writeFile("orders_schema.sql", `
CREATE TABLE orders (
  id INT PRIMARY KEY AUTO_INCREMENT,
  total DECIMAL(10,2) NOT NULL DEFAULT 0
);

DELIMITER //
CREATE TRIGGER orders_no_negative BEFORE INSERT ON orders
FOR EACH ROW
BEGIN
  IF NEW.total < 0 THEN
    SET NEW.total = 0;
  END IF;
END//
DELIMITER ;
`)
	writeFile("orders_data.sql", `
INSERT INTO orders (total) VALUES (12.50), (-3.00), (7.25);
`)
	writeFile("report.sql", `
-- not executed by any trigger, plain query script
SELECT COUNT(*) FROM orders;
`)

	var scripts []discovery.DiscoveredFile

	// Phase 1: Discovery
	t.Run("Discovery", func(t *testing.T) {
		var err error
		scripts, err = discovery.Discover(scriptDir)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if len(scripts) != 3 {
			t.Fatalf("Expected 3 scripts, got %d", len(scripts))
		}

		discovery.SortForExecution(scripts)
		// Schema first, then data, then plain scripts.
		if scripts[0].Type != discovery.FileTypeSchema {
			t.Errorf("First script should be schema, got %s", scripts[0].Type)
		}
		if scripts[1].Type != discovery.FileTypeData {
			t.Errorf("Second script should be data, got %s", scripts[1].Type)
		}
	})

	// Phase 2: Splitting (no server involvement)
	t.Run("Splitting", func(t *testing.T) {
		data, err := os.ReadFile(scripts[0].Path)
		if err != nil {
			t.Fatalf("Failed to read schema script: %v", err)
		}
		spans, directives, err := splitter.Split(string(data))
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		if len(spans) != 2 {
			t.Fatalf("Expected 2 statements in schema script, got %d", len(spans))
		}
		if len(directives) != 2 {
			t.Errorf("Expected 2 DELIMITER directives, got %d", len(directives))
		}
	})

	// Phase 3: Execution
	t.Run("Execution", func(t *testing.T) {
		db, err := database.Open(ctx, config)
		if err != nil {
			t.Fatalf("Failed to connect: %v", err)
		}
		defer db.Close()
		t.Logf("Connected to MySQL %s", db.ServerVersion())

		executor := runner.NewExecutor(db, config.Timeout, config.ContinueOnError, config.Verbose)
		runs, err := executor.ExecuteBatch(ctx, scripts)
		if err != nil {
			t.Fatalf("ExecuteBatch failed: %v", err)
		}

		summary := runner.SummarizeRuns(runs)
		if !summary.AllPassed() {
			for _, run := range runs {
				if run.Error != nil {
					t.Errorf("%s failed: %v", run.Script.RelativePath, run.Error)
				}
			}
			t.Fatalf("Expected all scripts to pass: %+v", summary)
		}
		if summary.TotalStatements != 4 {
			t.Errorf("Expected 4 statements total, got %d", summary.TotalStatements)
		}

		// The trigger created through the DELIMITER block must have fired.
		var clamped int
		if err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM orders WHERE total = 0").Scan(&clamped); err != nil {
			t.Fatalf("Verification query failed: %v", err)
		}
		if clamped != 1 {
			t.Errorf("Expected 1 clamped row, got %d", clamped)
		}
	})
}
