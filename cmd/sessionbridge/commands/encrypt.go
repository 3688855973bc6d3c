package commands

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sessionbridge/internal/crypto"
	"sessionbridge/internal/host"
)

var errNoRecipients = errors.New("at least one --to is required")

func encryptCmd() *cobra.Command {
	var (
		to       []string
		domain   string
		nonceHex string
	)
	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Seal a message for one or more recipients",
		Long: "Recipients are X25519 public keys or session ids in hex. The envelope\n" +
			"is printed as base64 and can be opened by any listed recipient.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(to) == 0 {
				return errNoRecipients
			}
			if err := requirePassphrase(); err != nil {
				return err
			}
			kp, err := wire.Keys.LoadKeyPair(passphrase)
			if err != nil {
				return err
			}

			var env []byte
			if len(to) == 1 && nonceHex == "" {
				env, err = wire.Host.EncryptText(args[0], to[0], kp.Secret[:], domain)
			} else {
				var nonce []byte
				if nonceHex != "" {
					if nonce, err = hex.DecodeString(nonceHex); err != nil {
						return fmt.Errorf("nonce: %w", err)
					}
				}
				messages := make([][]byte, len(to))
				recipients := make([][]byte, len(to))
				for i, r := range to {
					messages[i] = []byte(args[0])
					recipients[i] = []byte(r)
				}
				env, err = wire.Host.EncryptForMultiple(messages, recipients, kp.Secret[:], domain, nonce)
			}
			if err != nil {
				return err
			}
			if env == nil {
				return errors.New("encryption produced no envelope")
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(env))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient X25519 key or session id (repeatable)")
	cmd.Flags().StringVar(&domain, "domain", host.KickedDomain, "encryption domain")
	cmd.Flags().StringVar(&nonceHex, "nonce", "", "24-byte hex nonce (random when omitted)")
	return cmd
}

func decryptCmd() *cobra.Command {
	var (
		from   string
		domain string
	)
	cmd := &cobra.Command{
		Use:   "decrypt <envelope-base64>",
		Short: "Open an envelope addressed to the host key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			env, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("envelope: %w", err)
			}
			sender, err := hex.DecodeString(from)
			if err != nil {
				return fmt.Errorf("sender: %w", err)
			}
			kp, err := wire.Keys.LoadKeyPair(passphrase)
			if err != nil {
				return err
			}
			pt, ok, err := wire.Host.Decrypt(env, kp.Secret[:], sender, domain)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("no ciphertext in the envelope is addressed to this key")
			}
			if domain == host.KickedDomain && crypto.IsKickedMessage(string(pt)) {
				fmt.Fprintf(cmd.OutOrStdout(), "Removal notice: %s\n", pt)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pt))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sender Ed25519 public key (hex)")
	cmd.Flags().StringVar(&domain, "domain", host.KickedDomain, "encryption domain")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
