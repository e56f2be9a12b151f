package cli

import (
	"github.com/spf13/cobra"

	"github.com/zorba-modules/process"
)

func newExecCmd(ctx *context) *cobra.Command {
	var env []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "exec PROGRAM [ARG...]",
		Short: "Run a program with a literal argument vector",
		Long: "Run a program directly, with no shell involved: every ARG " +
			"arrives at the child as one argv element, byte for byte.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := process.Exec(args[0], args[1:], env)
			if err != nil {
				return err
			}
			return ctx.report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, asJSON)
		},
	}

	cmd.Flags().StringArrayVarP(&env, "env", "e", nil,
		"Environment assignment NAME=VALUE (repeatable; replaces the inherited environment)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result record as JSON")

	return cmd
}
