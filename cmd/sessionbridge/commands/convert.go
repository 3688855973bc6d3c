package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <ed25519-pubkey-hex>",
		Short: "Convert an Ed25519 public key to its X25519 form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("public key: %w", err)
			}
			x, err := wire.Host.Ed25519PKToCurve25519(pk)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(x))
			return nil
		},
	}
}
