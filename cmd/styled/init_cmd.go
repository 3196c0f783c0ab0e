package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const configFileName = ".styled.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .styled.yaml config file",
	Long:  `Create a .styled.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(configFileName); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
		}

		if err := os.WriteFile(configFileName, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
		return nil
	},
}

const defaultConfig = `# styled configuration

# Shared settings
prefix: styled              # generated class prefix
placeholder-prefix: ""      # empty = derive from the engine class (stylist-)
loose-pixel-fix: false      # rewrite every "px-", not only after a digit
trace-output: false
verbose: false

# Rewrite settings
rewrite:
  source: .
  include:
    - "**/*.style"
  deterministic: false      # sequential class names (prefix-1, prefix-2, ...)
  output-format: text       # text | json | css
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
