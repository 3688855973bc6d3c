package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sessionIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessionid <id>",
		Short: "Check that a string is a well-formed session id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok, err := wire.Host.SessionID(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%q is not a session id", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
