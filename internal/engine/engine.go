// Package engine is a small component-style engine. It compiles a style
// source (bare declarations plus one level of nested rules) into stylesheet
// text scoped to a generated placeholder class, and keeps a registry of the
// styles it has produced.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// PlaceholderPrefix starts every class name the engine generates.
const PlaceholderPrefix = "stylist-"

// ErrNotRegistered is returned when releasing a style that is no longer in
// the registry.
var ErrNotRegistered = errors.New("style not registered")

// SyntaxError reports a malformed style source.
type SyntaxError struct {
	Line   int // 1-based
	Column int // 1-based
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Style is a compiled, registered style.
type Style struct {
	className string
	text      string
	registry  *Registry
}

// ClassName returns the placeholder class the stylesheet is scoped to.
func (s *Style) ClassName() string { return s.className }

// StyleText returns the generated stylesheet.
func (s *Style) StyleText() string { return s.text }

// Release removes the style from its registry so it is no longer part of
// Registry.Stylesheet.
func (s *Style) Release() error {
	return s.registry.remove(s.className)
}

// Registry tracks live styles in registration order.
type Registry struct {
	mu     sync.Mutex
	styles map[string]*Style
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{styles: make(map[string]*Style)}
}

func (r *Registry) add(s *Style) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.styles[s.className] = s
	r.order = append(r.order, s.className)
}

func (r *Registry) remove(className string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.styles[className]; !ok {
		return fmt.Errorf("release %s: %w", className, ErrNotRegistered)
	}
	delete(r.styles, className)

	for i, name := range r.order {
		if name == className {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of live styles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.styles)
}

// Stylesheet concatenates the text of every live style.
func (r *Registry) Stylesheet() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for _, name := range r.order {
		sb.WriteString(r.styles[name].text)
	}
	return sb.String()
}

// Engine compiles style sources.
type Engine struct {
	registry *Registry
}

// New returns an engine with its own registry.
func New() *Engine {
	return &Engine{registry: NewRegistry()}
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Compile turns source into a registered Style. A malformed source yields a
// *SyntaxError and registers nothing.
func (e *Engine) Compile(source string) (*Style, error) {
	className := newClassName()

	text, err := compile(source, className)
	if err != nil {
		return nil, err
	}

	s := &Style{className: className, text: text, registry: e.registry}
	e.registry.add(s)
	return s, nil
}

// newClassName returns PlaceholderPrefix followed by ten random alphanumerics.
func newClassName() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return PlaceholderPrefix + id[:10]
}
