package styled

import (
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the CLI output format
type OutputFormat string

const (
	// OutputText shows class names, stylesheets and issues (interactive use)
	OutputText OutputFormat = "text"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputCSS concatenates the rewritten stylesheets (build pipelines)
	OutputCSS OutputFormat = "css"
)

// DetermineOutputFormat maps a format flag to an OutputFormat.
// Unknown or empty values select OutputText.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch strings.ToLower(formatFlag) {
	case "json":
		return OutputJSON
	case "css":
		return OutputCSS
	default:
		return OutputText
	}
}

// WriteOutput writes the process result in the specified format
func WriteOutput(w io.Writer, result *ProcessResult, format OutputFormat, useColors bool) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)

	case OutputCSS:
		return WriteCSS(w, result)

	default:
		reporter := NewReporter(w, useColors, true)
		reporter.PrintStyles(result.Styles)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
		return nil
	}
}

// WriteCSS writes every rewritten stylesheet preceded by a comment naming
// its source file
func WriteCSS(w io.Writer, result *ProcessResult) error {
	for _, s := range result.Styles {
		if _, err := fmt.Fprintf(w, "/* %s */\n%s", s.File, s.StyleString); err != nil {
			return err
		}
		if !strings.HasSuffix(s.StyleString, "\n") {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
