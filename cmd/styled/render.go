package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/styled"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an HTML fragment styled by one style source",
	Long: `Compile a style source, scope it to a generated class and print the HTML
fragment with that class on its first element, followed by a <style>
element holding the rewritten stylesheet. Nothing is printed when the
style source fails to compile.`,
	Example: `  styled render --style button.style --markup '<button>Go</button>'
  styled render --style card.style --markup-file card.html --render-id 0-1`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("style", "", "Style source file")
	f.String("markup", "", "HTML fragment")
	f.String("markup-file", "", "File holding the HTML fragment")
	f.String("render-id", "", "Render identity the class name is derived from")
	_ = renderCmd.MarkFlagRequired("style")
	renderCmd.MarkFlagsMutuallyExclusive("markup", "markup-file")
	renderCmd.MarkFlagsOneRequired("markup", "markup-file")
}

func runRender(cmd *cobra.Command, _ []string) error {
	stylePath := k.String("style")
	// #nosec G304 - path is supplied by the user running the CLI
	source, err := os.ReadFile(stylePath)
	if err != nil {
		return fmt.Errorf("reading style source: %w", err)
	}

	fragment := k.String("markup")
	if path := k.String("markup-file"); path != "" {
		// #nosec G304 - path is supplied by the user running the CLI
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading markup: %w", err)
		}
		fragment = string(data)
	}

	config := buildStylerConfig()
	config.Logger = cliLogger()
	config.TraceWriter = cmd.ErrOrStderr()

	ctx := cmd.Context()
	if id := k.String("render-id"); id != "" {
		ctx = styled.WithRenderID(ctx, id)
	}

	eng := styled.NewEngine()
	s := styled.New(config)
	if err := s.Component(ctx, cmd.OutOrStdout(), fragment, styled.From(eng.Compile(string(source)))); err != nil {
		return fmt.Errorf("%s: %w", stylePath, err)
	}
	return nil
}
