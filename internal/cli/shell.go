package cli

import (
	"github.com/spf13/cobra"

	"github.com/zorba-modules/process"
)

func newShellCmd(ctx *context) *cobra.Command {
	var env []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "shell COMMAND [ARG...]",
		Short: "Run a command line through the platform shell",
		Long: "Assemble COMMAND and ARGs into one command line and hand it " +
			"to the platform shell. Arguments containing a path separator " +
			"are quoted for the shell; everything else is shell-parsed, " +
			"so metacharacters in ARGs take effect.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := process.ExecCommand(args[0], args[1:], env)
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
