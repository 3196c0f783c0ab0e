package styled

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Styles    []JSONStyle `json:"styles"`
	Issues    []JSONIssue `json:"issues"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
	Styles       int `json:"styles"`
	Errors       int `json:"errors"`
}

// JSONStyle is one rewritten style source
type JSONStyle struct {
	File string `json:"file"`
	StyleInfo
}

// JSONIssue represents a single style failure
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the process result as JSON
func WriteJSON(w io.Writer, result *ProcessResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts ProcessResult to JSONOutput
func buildJSONOutput(result *ProcessResult) JSONOutput {
	styles := make([]JSONStyle, len(result.Styles))
	for i, s := range result.Styles {
		styles[i] = JSONStyle{File: s.File, StyleInfo: s.StyleInfo}
	}

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesScanned: result.FilesScanned,
			FilesSkipped: result.FilesSkipped,
			Styles:       len(result.Styles),
			Errors:       result.ErrorCount(),
		},
		Styles:   styles,
		Issues:   jsonIssues,
		Warnings: result.Warnings,
	}
}
