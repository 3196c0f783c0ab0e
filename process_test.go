package styled

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "button.style"), "color: blue;\n& span { margin: 4px -2px; }\n")
	writeFile(t, filepath.Join(dir, "nested", "card.style"), "padding: 1rem;\n")
	writeFile(t, filepath.Join(dir, "broken.style"), "color: red;\n  a { color blue; }\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a style")

	result, err := Process(context.Background(), ProcessConfig{
		Config:        Config{Logger: log.New(&bytes.Buffer{})},
		SourceDir:     dir,
		Includes:      []string{"**/*.style"},
		Deterministic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesScanned)
	require.Len(t, result.Styles, 2)
	require.Len(t, result.Issues, 1)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, result.ErrorCount())

	byFile := make(map[string]FileStyle)
	for _, s := range result.Styles {
		byFile[filepath.Base(s.File)] = s
	}

	button := byFile["button.style"]
	assert.Regexp(t, `^styled-\d+$`, button.ClassName)
	assert.Contains(t, button.StyleString, "span."+button.ClassName+" {\n  margin: 4px -2px;\n}\n")
	assert.NotContains(t, button.StyleString, "stylist-")

	card := byFile["card.style"]
	assert.Equal(t, "."+card.ClassName+" {\n  padding: 1rem;\n}\n", card.StyleString)
	assert.NotEqual(t, button.ClassName, card.ClassName)

	issue := result.Issues[0]
	assert.Equal(t, filepath.Join(dir, "broken.style"), issue.Pos.Filename)
	assert.Equal(t, 2, issue.Pos.Line)
	assert.Equal(t, 7, issue.Pos.Column)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Contains(t, issue.Text, "expected ':'")
	assert.Equal(t, []string{"  a { color blue; }"}, issue.SourceLines)
}

func TestProcess_NoMatches(t *testing.T) {
	result, err := Process(context.Background(), ProcessConfig{
		Config:    Config{Logger: log.New(&bytes.Buffer{})},
		SourceDir: t.TempDir(),
		Includes:  []string{"**/*.style"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesScanned)
	assert.Empty(t, result.Styles)
}

func TestProcess_BadPattern(t *testing.T) {
	_, err := Process(context.Background(), ProcessConfig{
		SourceDir: t.TempDir(),
		Includes:  []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

func TestProcess_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.style"), "color: red;")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Process(ctx, ProcessConfig{
		Config:    Config{Logger: log.New(&bytes.Buffer{})},
		SourceDir: dir,
		Includes:  []string{"*.style"},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Styles)
}

func TestScanStyleFiles_Dedup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.style"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.style"), "")

	files, stats, err := scanStyleFiles(dir, []string{"*.style", "**/*.style"})
	require.NoError(t, err)

	assert.Len(t, files, 2)
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 0, stats.FilesSkipped)
}
