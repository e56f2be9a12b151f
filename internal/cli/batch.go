package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zorba-modules/process"
	"github.com/zorba-modules/process/internal/command"
	"github.com/zorba-modules/process/internal/config"
)

func newBatchCmd(ctx *context) *cobra.Command {
	var manifestPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every command in a manifest sequentially",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(manifestPath)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()
			pretty := !asJSON && term.IsTerminal(int(os.Stdout.Fd()))
			enc := json.NewEncoder(stdout)

			for _, entry := range doc.Commands {
				spec, err := entry.Spec()
				if err != nil {
					return err
				}

				run := process.Exec
				if spec.Mode == command.ModeShell {
					run = process.ExecCommand
				}
				res, err := run(spec.Program, entry.Args, entry.Env)
				if err != nil {
					return fmt.Errorf("command %q: %w", entry.DisplayName(), err)
				}

				if asJSON {
					record := struct {
						Name string `json:"name"`
						*process.Result
					}{Name: entry.DisplayName(), Result: res}
					if err := enc.Encode(&record); err != nil {
						return fmt.Errorf("encode record: %w", err)
					}
					ctx.recordExit(res.ExitCode)
					continue
				}

				if pretty {
					fmt.Fprintf(stdout, "=== %s (exit %d)\n", entry.DisplayName(), res.ExitCode)
				}
				if err := ctx.report(stdout, stderr, res, false); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "file", "f", "commands.yaml", "Path to the batch manifest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit one JSON record per command")

	return cmd
}
