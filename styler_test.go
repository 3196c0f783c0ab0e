package styled

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/styled/internal/naming"
)

// fakeStyle records how the orchestrator treats the engine payload.
type fakeStyle struct {
	class      string
	text       string
	releaseErr error

	mu       sync.Mutex
	releases int
}

func (f *fakeStyle) ClassName() string { return f.class }
func (f *fakeStyle) StyleText() string { return f.text }
func (f *fakeStyle) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return f.releaseErr
}

// panicNames fails during name generation, after the payload was read.
type panicNames struct{}

func (panicNames) ClassName(context.Context, string) string { panic("boom") }

func quietLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestStyleInfo_EndToEndFixture(t *testing.T) {
	style := &fakeStyle{
		class: "stylist-abc123",
		text:  ".stylist-abc123 { color: blue; } .stylist-abc123-10px-5px { margin: 10px-5px; }",
	}
	s := New(Config{Generator: naming.NewSequence(""), Logger: quietLogger(&bytes.Buffer{})})

	info, err := s.StyleInfo(context.Background(), From(style, nil))
	require.NoError(t, err)

	assert.Equal(t, "styled-1", info.ClassName)
	assert.NotContains(t, info.StyleString, "stylist-abc123")
	assert.Contains(t, info.StyleString, ".styled-1 { color: blue; }")
	assert.Contains(t, info.StyleString, "margin: 10px -5px;")
	assert.Equal(t, 1, style.releases)
}

func TestStyleInfo_EngineFailureIsFatal(t *testing.T) {
	cause := errors.New("1:7: missing value for \"color\"")
	s := New(Config{Logger: quietLogger(&bytes.Buffer{})})

	info, err := s.StyleInfo(context.Background(), Failed(cause))
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrStyleEngine))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "styler_test.go:")
	assert.Equal(t, StyleInfo{}, info)
}

func TestStyleInfo_FromEngineError(t *testing.T) {
	s := New(Config{Logger: quietLogger(&bytes.Buffer{})})

	_, err := s.StyleInfo(context.Background(), From(NewEngine().Compile("color blue;")))
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Line)
	assert.True(t, errors.Is(err, ErrStyleEngine))
}

func TestStyleInfo_NilStyle(t *testing.T) {
	s := New(Config{Logger: quietLogger(&bytes.Buffer{})})

	_, err := s.StyleInfo(context.Background(), Result{})
	require.ErrorIs(t, err, ErrStyleEngine)
}

func TestStyleInfo_ReleaseFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	style := &fakeStyle{class: "stylist-q", text: ".stylist-q { top: 0; }", releaseErr: errors.New("gone")}
	s := New(Config{Generator: naming.NewSequence(""), Logger: quietLogger(&logs)})

	info, err := s.StyleInfo(context.Background(), From(style, nil))
	require.NoError(t, err)

	assert.Equal(t, ".styled-1 { top: 0; }", info.StyleString)
	assert.Contains(t, logs.String(), "releasing engine style failed")
	assert.Contains(t, logs.String(), "gone")
}

func TestStyleInfo_ReleasedWhenNamingPanics(t *testing.T) {
	style := &fakeStyle{class: "stylist-q", text: ""}
	s := New(Config{Generator: panicNames{}, Logger: quietLogger(&bytes.Buffer{})})

	assert.Panics(t, func() {
		_, _ = s.StyleInfo(context.Background(), From(style, nil))
	})
	assert.Equal(t, 1, style.releases)
}

func TestStyleInfo_TraceOutput(t *testing.T) {
	tests := []struct {
		name  string
		trace bool
		want  string
	}{
		{name: "off by default", trace: false, want: ""},
		{name: "on", trace: true, want: ".styled-1 { top: 0; }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := New(Config{
				Generator:   naming.NewSequence(""),
				TraceOutput: tt.trace,
				TraceWriter: &out,
				Logger:      quietLogger(&bytes.Buffer{}),
			})

			_, err := s.StyleInfo(context.Background(), From(&fakeStyle{class: "stylist-q", text: ".stylist-q { top: 0; }"}, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestStyleInfo_TraceOutputConcurrent(t *testing.T) {
	const n = 200

	var out bytes.Buffer
	s := New(Config{
		Generator:   naming.NewSequence(""),
		TraceOutput: true,
		TraceWriter: &out,
		Logger:      quietLogger(&bytes.Buffer{}),
	})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.StyleInfo(context.Background(), From(&fakeStyle{class: "stylist-q", text: ".stylist-q { top: 0; }"}, nil))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, n)
	for _, line := range lines {
		assert.Regexp(t, `^\.styled-\d+ \{ top: 0; \}$`, line)
	}
}

func TestStyleInfo_RenderID(t *testing.T) {
	s := New(Config{Logger: quietLogger(&bytes.Buffer{})})
	ctx := WithRenderID(context.Background(), "0-1")

	info, err := s.StyleInfo(ctx, From(&fakeStyle{class: "stylist-q", text: ".stylist-q span { }"}, nil))
	require.NoError(t, err)

	assert.Equal(t, "styled-0-1", info.ClassName)
	assert.Equal(t, "span.styled-0-1 { }", info.StyleString)
}

func TestStyleInfo_PlaceholderPrefixOverride(t *testing.T) {
	s := New(Config{
		Generator:         naming.NewSequence("ui"),
		PlaceholderPrefix: "css-",
		Logger:            quietLogger(&bytes.Buffer{}),
	})

	info, err := s.StyleInfo(context.Background(), From(&fakeStyle{class: "whatever", text: ".css-a1 { } .css-b2 { }"}, nil))
	require.NoError(t, err)
	assert.Equal(t, ".ui-1 { } .ui-1 { }", info.StyleString)
}

func TestStyleInfo_WithEngine(t *testing.T) {
	eng := NewEngine()
	s := New(Config{Generator: naming.NewSequence(""), Logger: quietLogger(&bytes.Buffer{})})

	info, err := s.StyleInfo(context.Background(), From(eng.Compile("color: blue;\nbutton { margin: 10px -5px; }")))
	require.NoError(t, err)

	assert.Equal(t, "styled-1", info.ClassName)
	assert.Equal(t,
		".styled-1 {\n  color: blue;\n}\nbutton.styled-1 {\n  margin: 10px -5px;\n}\n",
		info.StyleString)
	assert.Equal(t, 0, eng.Registry().Len(), "engine entry must be released")
}

func TestMustStyleInfo(t *testing.T) {
	s := New(Config{Logger: quietLogger(&bytes.Buffer{})})

	assert.Panics(t, func() {
		s.MustStyleInfo(context.Background(), Failed(errors.New("bad")))
	})
	assert.NotPanics(t, func() {
		s.MustStyleInfo(context.Background(), From(&fakeStyle{class: "stylist-q"}, nil))
	})
}

func TestComponent(t *testing.T) {
	s := New(Config{Generator: naming.NewSequence(""), Logger: quietLogger(&bytes.Buffer{})})

	var out bytes.Buffer
	err := s.Component(context.Background(), &out, `<nav>x</nav>`,
		From(&fakeStyle{class: "stylist-q", text: ".stylist-q a { color: red; }"}, nil))
	require.NoError(t, err)
	assert.Equal(t, `<nav class="styled-1">x</nav><style>a.styled-1 { color: red; }</style>`, out.String())

	out.Reset()
	err = s.Component(context.Background(), &out, `<nav>x</nav>`, Failed(errors.New("bad")))
	require.ErrorIs(t, err, ErrStyleEngine)
	assert.Empty(t, out.String(), "failed styles must not render the subtree")
}

func TestGetStyleInfo_PackageLevel(t *testing.T) {
	before := defaultEngine.Registry().Len()

	info, err := GetStyleInfo(context.Background(), From(Compile("color: red;")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(info.ClassName, "styled-"))
	assert.Equal(t, "."+info.ClassName+" {\n  color: red;\n}\n", info.StyleString)
	assert.Equal(t, before, defaultEngine.Registry().Len())

	_, err = GetStyleInfo(context.Background(), From(Compile("}")))
	require.ErrorIs(t, err, ErrStyleEngine)

	assert.Panics(t, func() {
		MustStyleInfo(context.Background(), From(Compile("{")))
	})
}

func TestGetStyleInfo_ConcurrentUniqueNames(t *testing.T) {
	const n = 1000

	names := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			info, err := GetStyleInfo(context.Background(), From(&fakeStyle{class: "stylist-q"}, nil))
			if err == nil {
				names[i] = info.ClassName
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, name := range names {
		require.NotEmpty(t, name)
		require.False(t, seen[name], "duplicate class name %s", name)
		seen[name] = true
	}
}
