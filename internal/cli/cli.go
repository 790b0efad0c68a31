// Package cli is the command line surface: with no arguments it starts the
// interactive list, otherwise it runs one scripted operation and exits.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

// TUI runs the interactive interface until the user quits.
type TUI func(ctrl *app.Controller, cfg config.Config) error

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitcode.UserError, err: fmt.Errorf(format, args...)}
}

func setupError(err error) error {
	return &exitError{code: exitcode.SetupError, err: err}
}

// Code maps an error returned by a command to a process exit code.
// Errors cobra raises itself (unknown command, bad flag) are user errors.
func Code(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitcode.UserError
}

// Run executes args and returns the exit code.
func Run(args []string, out, errOut io.Writer, tui TUI) int {
	root := NewRoot(out, tui)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
	}
	return Code(err)
}

func NewRoot(out io.Writer, tui TUI) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "A small paginated task list",
		Long:          "todo keeps a local task list. Run it without arguments for the interactive view.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(configPath)
			if err != nil {
				return err
			}
			defer s.Close()

			// Anything bubbletea or its deps print through the std logger
			// would corrupt the screen.
			log.SetOutput(s.log.WithComponent("tui"))
			defer log.SetOutput(os.Stderr)

			if err := tui(s.ctrl, s.cfg); err != nil {
				return fmt.Errorf("run interface: %w", err)
			}
			return s.saved()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.ResolveConfigPath(), "path to config.toml")

	open := func() (*session, error) { return openSession(configPath) }
	root.AddCommand(
		newAddCmd(out, open),
		newListCmd(out, open),
		newDoneCmd(out, open, true),
		newDoneCmd(out, open, false),
		newEditCmd(out, open),
		newRemoveCmd(out, open),
		newClearCmd(out, open),
	)
	return root
}
