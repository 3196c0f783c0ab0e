// Package main provides the styled CLI: it rewrites component style sources
// into stylesheets scoped to generated class names.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Failed style sources were already reported as issues
		if !errors.Is(err, errStylesFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newLogger creates a timestamped logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "styled",
	})
}

// cliLogger returns the logger for the current invocation, debug level when
// --verbose is set.
func cliLogger() *log.Logger {
	level := log.WarnLevel
	if getBoolWithFallback("verbose", "verbose", false) {
		level = log.DebugLevel
	}
	return newLogger(os.Stderr, level)
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
