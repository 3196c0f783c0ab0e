// Package styled scopes component styles for server-rendered markup.
//
// A style source is compiled by the styling engine into stylesheet text that
// targets an engine-assigned placeholder class. styled generates a unique
// class for the component, rewrites the stylesheet to target it and embeds
// both into the rendered HTML.
//
// # Styling a component
//
//	info, err := styled.GetStyleInfo(ctx, styled.From(styled.Compile(`
//		color: blue;
//		button { margin: 10px -5px; }
//	`)))
//	if err != nil {
//		return err // never render the component unstyled
//	}
//	err = styled.Embed(w, `<div class="card">...</div>`, info)
//
// When the host framework knows the render position of the component, put it
// on the context with WithRenderID and the class name is derived from it:
//
//	ctx = styled.WithRenderID(ctx, "0-1-2") // class "styled-0-1-2"
//
// # CLI Tool
//
// styled also provides a CLI that rewrites style source files in bulk:
//
//	go install github.com/yacobolo/styled/cmd/styled@latest
package styled

// Public API:
// - New(config Config) *Styler, (*Styler).StyleInfo, (*Styler).Component
// - GetStyleInfo / MustStyleInfo using the package-level Styler
// - Compile(source string) (Style, error) using the package-level engine
// - Embed(w io.Writer, fragment string, info StyleInfo) error
// - Process(ctx, config ProcessConfig) (*ProcessResult, error)
// - WriteOutput(w io.Writer, result *ProcessResult, format OutputFormat, useColors bool) error
