// Package cli implements the lpparser command-line interface.
//
// Commands cover the full lifecycle of an LP file: parse and reprint,
// summarize (info), compare two files (diff), convert to JSON or CSV,
// apply edits, render the incidence graph, and browse interactively
// (view). All commands support --verbose (-v) for debug logging; the
// logger is carried through context.Context.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dandxy89/lp-parser-rs/pkg/buildinfo"
	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

// exitError carries an explicit process exit code through the cobra
// error path. The diff command uses it for its 0/1/2 contract.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// Execute runs the lpparser CLI and returns the process exit code.
// Errors map to stable codes via the error taxonomy: NOT_FOUND 2,
// PARSE_ERROR 3, STATE_ERROR 4, VALIDATION_ERROR 5, IO_ERROR 6.
func Execute(ctx context.Context) int {
	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(os.Stderr, "Error:", apperrors.UserMessage(ee.err))
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "Error:", apperrors.UserMessage(err))
	return apperrors.ExitCode(err)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "lpparser",
		Short:         "lpparser parses, edits, and compares LP files",
		Long:          `lpparser is a toolkit for linear programming files in LP format: parse and normalize them, inspect their structure, apply edits, convert to JSON or CSV, and diff two models.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newParseCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newCompletionCmd())

	return root
}
