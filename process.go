package styled

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yacobolo/styled/internal/engine"
	"github.com/yacobolo/styled/internal/naming"
	"go.uber.org/multierr"
)

// ProcessConfig holds batch rewrite configuration
type ProcessConfig struct {
	Config                 // Styler settings
	SourceDir     string   // "web/styles"
	Includes      []string // ["**/*.style"]
	Deterministic bool     // Sequential class names instead of hashed ones
	Verbose       bool     // Debug logging
}

// FileStyle is the rewritten style of one source file
type FileStyle struct {
	File string
	StyleInfo
}

// ProcessResult contains batch rewrite results and stats
type ProcessResult struct {
	FilesScanned int
	FilesSkipped int
	Styles       []FileStyle
	Issues       []Issue
	Warnings     []string
}

// ErrorCount returns the number of error-severity issues
func (r *ProcessResult) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Process compiles every style source matched by config.Includes and
// rewrites it to a generated class. Style sources that fail to compile become
// Issues. Files that cannot be read are collected into the returned error;
// the result is still valid in that case.
func Process(ctx context.Context, config ProcessConfig) (*ProcessResult, error) {
	result := &ProcessResult{}

	// 1. Scan style files
	files, stats, err := scanStyleFiles(config.SourceDir, config.Includes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped

	styler := newProcessStyler(config)
	styler.logger.Debug("found style files", "count", len(files), "skipped", stats.FilesSkipped)

	// 2. Compile and rewrite each file
	eng := engine.New()
	var errs error

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, multierr.Append(errs, err)
		}

		// #nosec G304 - path comes from trusted configuration
		content, err := os.ReadFile(file)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", file, err))
			continue
		}

		info, err := styler.styleInfo(ctx, file, From(eng.Compile(string(content))))
		if err != nil {
			result.Issues = append(result.Issues, issueFor(file, string(content), err))
			continue
		}

		styler.logger.Debug("rewrote", "file", file, "class", info.ClassName)
		result.Styles = append(result.Styles, FileStyle{File: file, StyleInfo: info})
	}

	// 3. Every compiled style must have been handed back
	if n := eng.Registry().Len(); n > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d engine styles were not released", n))
	}

	return result, errs
}

func newProcessStyler(config ProcessConfig) *Styler {
	c := config.Config
	if c.Generator == nil && config.Deterministic {
		c.Generator = naming.NewSequence(c.Prefix)
	}
	if c.Logger == nil && config.Verbose {
		c.Logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel, Prefix: "styled"})
	}
	return New(c)
}

// issueFor converts a style failure into an Issue positioned at the syntax
// error when there is one
func issueFor(file, content string, err error) Issue {
	issue := Issue{
		FromLinter: linterName,
		Severity:   SeverityError,
		Text:       err.Error(),
		Pos:        IssuePos{Filename: file},
	}

	var syntaxErr *engine.SyntaxError
	if errors.As(err, &syntaxErr) {
		issue.Text = syntaxErr.Msg
		issue.Pos.Line = syntaxErr.Line
		issue.Pos.Column = syntaxErr.Column

		lines := strings.Split(content, "\n")
		if syntaxErr.Line >= 1 && syntaxErr.Line <= len(lines) {
			issue.SourceLines = []string{strings.TrimRight(lines[syntaxErr.Line-1], "\r")}
		}
	}

	return issue
}
