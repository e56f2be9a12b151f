// Package cli implements the procrun harness, a thin operator-facing shell
// around the process library. The library itself has no CLI contract; this
// binary exists for manual testing and batch manifests.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zorba-modules/process"
)

func newRootCommand() (*cobra.Command, *context) {
	root := &cobra.Command{
		Use:   "procrun",
		Short: "Run programs to completion and capture their output",
	}

	ctx := &context{}
	root.AddCommand(newExecCmd(ctx))
	root.AddCommand(newShellCmd(ctx))
	root.AddCommand(newBatchCmd(ctx))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint. The process exits with the child's
// normalized exit code, or 1 when the invocation itself failed.
func Execute() {
	root, ctx := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if ctx.exitCode != 0 {
		os.Exit(ctx.exitCode)
	}
}

// context carries the harness state a command leaves behind for Execute.
type context struct {
	exitCode int
}

// recordExit keeps the first non-zero child exit code; later failures do
// not override it.
func (c *context) recordExit(code int) {
	if c.exitCode == 0 && code != 0 {
		c.exitCode = code
	}
}

// report relays one result to the caller: raw stream passthrough by
// default, the contract record as JSON when asked.
func (c *context) report(stdout, stderr io.Writer, res *process.Result, asJSON bool) error {
	c.recordExit(res.ExitCode)
	if asJSON {
		enc := json.NewEncoder(stdout)
		return enc.Encode(res)
	}
	if _, err := io.WriteString(stdout, res.Stdout); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	if _, err := io.WriteString(stderr, res.Stderr); err != nil {
		return fmt.Errorf("write stderr: %w", err)
	}
	return nil
}
