package styled

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/yacobolo/styled/internal/engine"
	"github.com/yacobolo/styled/internal/markup"
	"github.com/yacobolo/styled/internal/naming"
	"github.com/yacobolo/styled/internal/rewrite"
)

// Styler turns styling engine results into StyleInfo. It is safe for
// concurrent use.
type Styler struct {
	config Config
	names  NameGenerator
	trace  io.Writer
	logger *log.Logger

	traceMu sync.Mutex // guards trace
}

// New creates a Styler, filling unset Config fields with defaults.
func New(config Config) *Styler {
	s := &Styler{
		config: config,
		names:  config.Generator,
		trace:  config.TraceWriter,
		logger: config.Logger,
	}

	if s.names == nil {
		s.names = naming.NewAuto(config.Prefix)
	}
	if s.trace == nil {
		s.trace = os.Stdout
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "styled",
		})
	}

	return s
}

// StyleInfo unwraps res, generates the component class and rewrites the
// stylesheet to target it. A failed res yields an error wrapping
// ErrStyleEngine and the engine's error; no StyleInfo is produced.
func (s *Styler) StyleInfo(ctx context.Context, res Result) (StyleInfo, error) {
	return s.styleInfo(ctx, callSite(2), res)
}

// MustStyleInfo is like StyleInfo but panics on failure.
func (s *Styler) MustStyleInfo(ctx context.Context, res Result) StyleInfo {
	info, err := s.styleInfo(ctx, callSite(2), res)
	if err != nil {
		panic(err)
	}
	return info
}

// Component styles the first element of fragment with res and writes it to
// w. On failure nothing is written.
func (s *Styler) Component(ctx context.Context, w io.Writer, fragment string, res Result) error {
	info, err := s.styleInfo(ctx, callSite(2), res)
	if err != nil {
		return err
	}
	return Embed(w, fragment, info)
}

func (s *Styler) styleInfo(ctx context.Context, site string, res Result) (StyleInfo, error) {
	if res.Err != nil {
		return StyleInfo{}, fmt.Errorf("%w at %s: %w", ErrStyleEngine, site, res.Err)
	}
	if res.Style == nil {
		return StyleInfo{}, fmt.Errorf("%w at %s: engine returned no style", ErrStyleEngine, site)
	}

	placeholder := res.Style.ClassName()
	text := res.Style.StyleText()

	// The payload is ours now; the engine entry goes away however we leave
	release := sync.OnceFunc(func() { s.release(res.Style, placeholder) })
	defer release()

	className := s.names.ClassName(ctx, site)
	release()

	rewritten := rewrite.Rewrite(text, s.placeholder(placeholder), className, rewrite.Options{
		LoosePixelFix: s.config.LoosePixelFix,
	})

	if s.config.TraceOutput {
		s.traceMu.Lock()
		fmt.Fprintln(s.trace, rewritten)
		s.traceMu.Unlock()
	}
	s.logger.Debug("rewrote style", "site", site, "placeholder", placeholder, "class", className)

	return StyleInfo{ClassName: className, StyleString: rewritten}, nil
}

func (s *Styler) release(style Style, placeholder string) {
	if err := style.Release(); err != nil {
		s.logger.Warn("releasing engine style failed", "placeholder", placeholder, "err", err)
	}
}

func (s *Styler) placeholder(engineClass string) rewrite.Placeholder {
	if s.config.PlaceholderPrefix != "" {
		return rewrite.Placeholder{Prefix: s.config.PlaceholderPrefix}
	}
	return rewrite.PlaceholderFor(engineClass)
}

// callSite returns "file:line" of the caller skip frames up.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Engine compiles style sources into registered styles.
type Engine = engine.Engine

// SyntaxError reports a malformed style source.
type SyntaxError = engine.SyntaxError

// NewEngine returns an engine with its own registry.
func NewEngine() *Engine {
	return engine.New()
}

var (
	defaultEngine = engine.New()
	defaultStyler = New(Config{})
)

// Compile compiles source with the package-level engine.
func Compile(source string) (Style, error) {
	s, err := defaultEngine.Compile(source)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStyleInfo is StyleInfo on the package-level Styler.
func GetStyleInfo(ctx context.Context, res Result) (StyleInfo, error) {
	return defaultStyler.styleInfo(ctx, callSite(2), res)
}

// MustStyleInfo is MustStyleInfo on the package-level Styler.
func MustStyleInfo(ctx context.Context, res Result) StyleInfo {
	info, err := defaultStyler.styleInfo(ctx, callSite(2), res)
	if err != nil {
		panic(err)
	}
	return info
}

// WithRenderID attaches the host framework's render identity to ctx. Class
// names generated under that context are derived from it.
func WithRenderID(ctx context.Context, id string) context.Context {
	return naming.WithRenderID(ctx, id)
}

// Embed writes fragment with its first element carrying info.ClassName,
// followed by a <style> element holding info.StyleString.
func Embed(w io.Writer, fragment string, info StyleInfo) error {
	if err := markup.RenderFragment(w, fragment, info.ClassName, info.StyleString); err != nil {
		return fmt.Errorf("embed %s: %w", info.ClassName, err)
	}
	return nil
}
