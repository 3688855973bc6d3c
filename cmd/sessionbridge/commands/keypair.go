package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func keypairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Manage the host Ed25519 key pair",
	}
	cmd.AddCommand(keypairInitCmd(), keypairShowCmd())
	return cmd
}

func keypairInitCmd() *cobra.Command {
	var seedHex string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Derive a key pair and seal it under the passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			var seed []byte
			if seedHex != "" {
				s, err := hex.DecodeString(seedHex)
				if err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				seed = s
			}
			kp, id, err := wire.Keys.GenerateKeyPair(passphrase, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key pair created.\nSession ID: %s\nPublic key: %x\n", id, kp.Public[:])
			return nil
		},
	}
	cmd.Flags().StringVar(&seedHex, "seed", "", "32-byte hex seed (random when omitted)")
	return cmd
}

func keypairShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the session id and public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			kp, err := wire.Keys.LoadKeyPair(passphrase)
			if err != nil {
				return err
			}
			id, err := wire.Keys.SessionID(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session ID: %s\nPublic key: %x\n", id, kp.Public[:])
			return nil
		},
	}
}
