package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sessionbridge/internal/app"
)

var (
	home       string
	passphrase string
	kdf        string
	verbose    bool
	wire       *app.Wire
)

var errPassphraseRequired = errors.New("passphrase required (-p)")

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sessionbridge",
		Short:        "Drive the native config and crypto boundary from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".sessionbridge")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			w, err := app.NewWire(app.Config{
				Home:    home,
				KDF:     kdf,
				Verbose: verbose,
				Log:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("wire: %w", err)
			}
			wire = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.sessionbridge)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the key pair")
	root.PersistentFlags().StringVar(&kdf, "kdf", "argon2id", "passphrase KDF for new key files (argon2id or scrypt)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log boundary decisions at debug level")

	root.AddCommand(
		keypairCmd(),
		convertCmd(),
		encryptCmd(),
		decryptCmd(),
		communityCmd(),
		sessionIDCmd(),
		namespaceCmd(),
		configCmd(),
	)
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return errPassphraseRequired
	}
	return nil
}
