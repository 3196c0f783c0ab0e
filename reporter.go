package styled

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Reporter handles formatting and outputting rewrite results
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
}

// NewReporter creates a new reporter
func NewReporter(w io.Writer, useColors, printLines bool) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  useColors,
		printLines: printLines,
	}
}

// PrintStyles outputs each rewritten style with its generated class
func (r *Reporter) PrintStyles(styles []FileStyle) {
	for _, s := range styles {
		fmt.Fprintf(r.w, "%s %s\n",
			RenderStyle(StyleCyan, s.File+":", r.useColors),
			RenderStyle(StyleGreen, s.ClassName, r.useColors))

		body := strings.TrimRight(s.StyleString, "\n")
		if body == "" {
			continue
		}
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleGray, line, r.useColors))
		}
	}
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	// Sort issues by file, then line, then column
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(StyleRed, issue.Text, r.useColors),
		RenderStyle(StyleGray, fmt.Sprintf(" (%s)", issue.FromLinter), r.useColors))

	// Print source lines with caret indicator
	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the style and issue counts
func (r *Reporter) PrintSummary(result ProcessResult) {
	fmt.Fprintln(r.w, "")

	fmt.Fprintf(r.w, "%s rewritten, %s",
		pluralizeCount(len(result.Styles), "style", "styles"),
		pluralizeCount(len(result.Issues), "issue", "issues"))
	if result.FilesSkipped > 0 {
		fmt.Fprintf(r.w, " (%s skipped)", pluralizeCount(result.FilesSkipped, "file", "files"))
	}
	fmt.Fprintln(r.w)

	for _, w := range result.Warnings {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleYellow, "Warning:", r.useColors), w)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
