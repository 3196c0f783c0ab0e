package styled

// Issue represents a single style failure in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "styled"
	Text        string   `json:"Text"`        // "expected ':' in declaration \"color blue\""
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of the style source with the issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/styles/button.style"
	Line     int    `json:"Line"`     // 3 (0 when unknown)
	Column   int    `json:"Column"`   // 15 (1-based)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

const linterName = "styled"
