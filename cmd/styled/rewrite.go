package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/styled"
)

// errStylesFailed reports that at least one style source failed to compile.
// The issues have already been printed.
var errStylesFailed = errors.New("style sources failed")

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Compile style sources and scope them to generated classes",
	Long: `Compile every style source matched by the include globs, generate a
class name for each and rewrite its stylesheet to target that class.
Files that fail to compile are reported as issues and make the command exit 1.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRewrite,
}

func init() {
	f := rewriteCmd.Flags()
	f.String("source", ".", "Directory the include globs are relative to")
	f.StringSlice("include", nil, "Glob patterns for style sources (default: **/*.style)")
	f.String("output-format", "", "Output format: text|json|css")
	f.Bool("deterministic", false, "Use sequential class names (prefix-1, prefix-2, ...)")
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	logger := cliLogger()
	config := buildProcessConfig()
	config.Logger = logger
	config.TraceWriter = cmd.ErrOrStderr()

	p := newProgress(logger)
	result, err := styled.Process(cmd.Context(), config)
	if result == nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}
	if err != nil {
		// Unreadable files do not invalidate the rest of the run
		logger.Error("some style sources could not be read", "err", err)
	}
	p.done(fmt.Sprintf("Rewrote %d of %d style sources", len(result.Styles), result.FilesScanned))

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		format := styled.DetermineOutputFormat(getStringWithFallback("output-format", "rewrite.output-format", ""))
		useColors := styled.ShouldUseColors(getBoolWithFallback("color", "color", false))
		if err := styled.WriteOutput(cmd.OutOrStdout(), result, format, useColors); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if result.ErrorCount() > 0 || err != nil {
		return errStylesFailed
	}
	return nil
}
