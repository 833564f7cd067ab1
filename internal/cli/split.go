package cli

import (
	"fmt"
	"os"

	"github.com/mysqlscript/mysqlrun/internal/errors"
	"github.com/mysqlscript/mysqlrun/internal/report"
	"github.com/mysqlscript/mysqlrun/internal/splitter"
)

// Split splits a single SQL script into statements without connecting to a
// server and renders the result. The returned exit code is 0 on success and
// 2 when the script is malformed; statements found before the error are
// still reported.
func Split(config *Config, scriptPath string) (int, error) {
	if !report.ValidFormat(config.Format) {
		return 2, fmt.Errorf("unsupported format: %s (supported: %v)", config.Format, report.SupportedFormats())
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return 2, fmt.Errorf("failed to read script: %w", err)
	}

	spans, directives, splitErr := splitter.Split(string(data))
	if splitErr != nil {
		line, column, _ := splitter.ErrorPosition(splitErr)
		splitErr = errors.NewScriptError(scriptPath, line, column, splitErr)
	}

	formatter, err := report.GetFormatter(report.FormatType(config.Format))
	if err != nil {
		return 2, err
	}
	writer, closeOutput, err := report.OpenOutput(config.Output)
	if err != nil {
		return 2, err
	}
	defer closeOutput()

	if err := formatter.FormatSplit(report.NewSplitReport(scriptPath, spans, directives, splitErr), writer); err != nil {
		return 2, fmt.Errorf("failed to format report: %w", err)
	}

	if splitErr != nil {
		return 2, splitErr
	}
	return 0, nil
}
