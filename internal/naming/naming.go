// Package naming generates the scoping class names handed to rendered
// components.
//
// Two strategies are supported. When the host framework puts a render
// identity on the context (see WithRenderID) the name is derived from it and
// is unique by construction. Otherwise the name is a 64-bit hash over the
// call site and a process-wide counter.
package naming

import (
	"context"
	"encoding/binary"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// DefaultPrefix is put in front of every generated class name.
const DefaultPrefix = "styled"

// Generator produces one class name per style invocation.
type Generator interface {
	// ClassName returns a class name unique to this invocation. site is a
	// stable tag for the calling location, typically "file:line".
	ClassName(ctx context.Context, site string) string
}

// invocations is shared by every Auto generator in the process. It only ever
// grows; distinctness of successive values is all that matters.
var invocations atomic.Uint64

type ctxKey int

const renderIDKey ctxKey = 0

// WithRenderID returns a context carrying the host framework's render
// identity, e.g. a hydration id like "0-1-2".
func WithRenderID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, renderIDKey, id)
}

// RenderID returns the render identity attached to ctx, if any.
func RenderID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(renderIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Auto prefers the render identity on the context and falls back to hashing.
type Auto struct {
	Prefix string
}

// NewAuto returns an Auto generator. An empty prefix selects DefaultPrefix.
func NewAuto(prefix string) Auto {
	return Auto{Prefix: prefix}
}

// ClassName implements Generator.
func (a Auto) ClassName(ctx context.Context, site string) string {
	prefix := a.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if id, ok := RenderID(ctx); ok {
		return prefix + "-" + sanitize(id)
	}

	return prefix + "-" + strconv.FormatUint(hashSite(site, invocations.Add(1)), 36)
}

// hashSite mixes the call site with the invocation counter.
func hashSite(site string, n uint64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(site)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	_, _ = d.Write(buf[:])

	return d.Sum64()
}

// Sequence hands out "<prefix>-1", "<prefix>-2", ... in call order. It
// ignores the context and is meant for reproducible output.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewSequence returns a Sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// ClassName implements Generator.
func (s *Sequence) ClassName(_ context.Context, _ string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "-" + strconv.FormatUint(s.n.Add(1), 10)
}

// sanitize makes id safe to use in a class name. Letters, digits and '-'
// are kept, '_' becomes "__" and every other byte becomes '_' followed by two
// hex digits, so distinct ids stay distinct.
func sanitize(id string) string {
	const hex = "0123456789abcdef"

	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		case c == '_':
			b.WriteString("__")
		default:
			b.WriteByte('_')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
