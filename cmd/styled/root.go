package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "styled",
	Short: "Scope component styles to generated class names",
	Long: `Compile component style sources and rewrite each stylesheet so it
targets a freshly generated class instead of the engine's placeholder.
Running styled without a subcommand runs rewrite.`,
	// Default behavior: run rewrite when no subcommand is given.
	// loadConfig is called here because PreRunE of rewriteCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runRewrite(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".styled.yaml", "Config file path")
	rootCmd.PersistentFlags().String("prefix", "", "Generated class prefix (default: styled)")
	rootCmd.PersistentFlags().String("placeholder-prefix", "", "Engine placeholder prefix (default: derived from the engine class)")
	rootCmd.PersistentFlags().Bool("loose-pixel-fix", false, "Rewrite every \"px-\", not only after a digit")
	rootCmd.PersistentFlags().Bool("trace-output", false, "Print each rewritten stylesheet")

	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
