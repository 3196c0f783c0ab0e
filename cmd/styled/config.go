package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/styled"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = configFileName
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Unset flags are skipped so their
	// defaults never shadow file or env values; defaults live in build*Config.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (STYLED_* prefix)
	if err := k.Load(env.Provider("STYLED_", ".", func(s string) string {
		// STYLED_REWRITE_SOURCE -> rewrite.source
		// STYLED_VERBOSE -> verbose
		// Dashed keys cannot be spelled in env names, so
		// STYLED_TRACE_OUTPUT -> trace.output (read through envKey)
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STYLED_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildStylerConfig constructs the library's Config from koanf state.
func buildStylerConfig() styled.Config {
	return styled.Config{
		Prefix:            getStringWithFallback("prefix", envKey("prefix"), ""),
		PlaceholderPrefix: getStringWithFallback("placeholder-prefix", envKey("placeholder-prefix"), ""),
		LoosePixelFix:     getBoolWithFallback("loose-pixel-fix", envKey("loose-pixel-fix"), false),
		TraceOutput:       getBoolWithFallback("trace-output", envKey("trace-output"), false),
	}
}

// buildProcessConfig constructs the library's ProcessConfig from koanf state.
func buildProcessConfig() styled.ProcessConfig {
	config := styled.ProcessConfig{
		Config:        buildStylerConfig(),
		SourceDir:     getStringWithFallback("source", "rewrite.source", "."),
		Deterministic: getBoolWithFallback("deterministic", "rewrite.deterministic", false),
		Verbose:       getBoolWithFallback("verbose", "verbose", false),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("rewrite.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = []string{"**/*.style"}
	}

	return config
}

// envKey maps a dashed top-level key to the dotted form the env provider
// produces for it.
func envKey(key string) string {
	return strings.ReplaceAll(key, "-", ".")
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
