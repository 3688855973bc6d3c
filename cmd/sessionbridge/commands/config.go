package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sessionbridge/internal/host"
)

func configCmd() *cobra.Command {
	var (
		nsName string
		signed bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write config objects persisted per namespace",
	}
	cmd.PersistentFlags().StringVarP(&nsName, "namespace", "n", "USER_PROFILE", "storage namespace name")
	cmd.PersistentFlags().BoolVar(&signed, "signed", false, "open a signing config keyed by the host key pair")

	open := func() (*host.Config, func() error, error) {
		ns, err := lookupNamespace(nsName)
		if err != nil {
			return nil, nil, err
		}
		dump, _, err := wire.Dumps.LoadDump(ns)
		if err != nil {
			return nil, nil, err
		}
		var c *host.Config
		if signed {
			if err := requirePassphrase(); err != nil {
				return nil, nil, err
			}
			kp, err := wire.Keys.LoadKeyPair(passphrase)
			if err != nil {
				return nil, nil, err
			}
			c, err = wire.Host.NewConfigSig(ns, kp.Secret[:], dump)
			if err != nil {
				return nil, nil, err
			}
		} else if c, err = wire.Host.NewConfigBase(ns, dump); err != nil {
			return nil, nil, err
		}
		save := func() error {
			d, err := c.Dump()
			if err != nil {
				return err
			}
			return wire.Dumps.SaveDump(ns, d)
		}
		return c, save, nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a value and persist the dump",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, save, err := open()
				if err != nil {
					return err
				}
				defer c.Close()
				if err := c.Set(args[0], []byte(args[1])); err != nil {
					return err
				}
				return save()
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a stored value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, _, err := open()
				if err != nil {
					return err
				}
				defer c.Close()
				v, ok, err := c.Get(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("key %q not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(v))
				return nil
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List stored keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, _, err := open()
				if err != nil {
					return err
				}
				defer c.Close()
				keys, err := c.Keys()
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
	)
	return cmd
}
