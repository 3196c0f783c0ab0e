package styled

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// ErrStyleEngine marks a failed styling engine call. Rendering of the
// component that requested the style must stop.
var ErrStyleEngine = errors.New("style engine failure")

// Style is the success payload of a styling engine call.
type Style interface {
	// ClassName is the engine's placeholder class, e.g. "stylist-abc123".
	ClassName() string
	// StyleText is the generated stylesheet targeting ClassName.
	StyleText() string
	// Release drops the engine's own registration of the style.
	Release() error
}

// Result is the outcome of a styling engine call.
type Result struct {
	Style Style
	Err   error
}

// From wraps an engine call so it can be passed straight to StyleInfo:
//
//	s.StyleInfo(ctx, styled.From(engine.Compile(src)))
func From(style Style, err error) Result {
	if err != nil {
		return Result{Err: err}
	}
	return Result{Style: style}
}

// Failed returns a failure Result.
func Failed(err error) Result {
	return Result{Err: err}
}

// StyleInfo is what the markup layer needs: the class for the root element
// and the stylesheet targeting it.
type StyleInfo struct {
	ClassName   string `json:"class_name"`
	StyleString string `json:"style_string"`
}

// NameGenerator produces the scoping class for one style invocation.
type NameGenerator interface {
	ClassName(ctx context.Context, site string) string
}

// Config holds Styler configuration
type Config struct {
	Prefix            string        // Generated class prefix (default: "styled")
	PlaceholderPrefix string        // Engine placeholder prefix (default: derived from the engine class)
	LoosePixelFix     bool          // Rewrite every "px-", not only after a digit
	TraceOutput       bool          // Write each rewritten stylesheet to TraceWriter
	TraceWriter       io.Writer     // Defaults to os.Stdout
	Generator         NameGenerator // Defaults to render id / hash strategy
	Logger            *log.Logger   // Defaults to a warn-level stderr logger
}
