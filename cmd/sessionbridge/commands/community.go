package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sessionbridge/internal/domain"
)

func communityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Parse or build community URLs",
	}
	cmd.AddCommand(communityParseCmd(), communityURLCmd())
	return cmd
}

func communityParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>",
		Short: "Split a full community URL into base URL, room and public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := wire.Host.ParseCommunityURL(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base URL:   %s\n", ref.BaseURL)
			fmt.Fprintf(out, "Room:       %s\n", ref.Room)
			fmt.Fprintf(out, "Public key: %s\n", ref.PubkeyHex)
			return nil
		},
	}
}

func communityURLCmd() *cobra.Command {
	var ref domain.CommunityReference
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Render the full URL of a community",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := wire.Host.CommunityFullURL(ref)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().StringVar(&ref.BaseURL, "base", "", "server base URL")
	cmd.Flags().StringVar(&ref.Room, "room", "", "room token")
	cmd.Flags().StringVar(&ref.PubkeyHex, "pubkey", "", "server public key (hex)")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("pubkey")
	return cmd
}
