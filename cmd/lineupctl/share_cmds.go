package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pranay-Prat/football-lineup-maker/internal/editor"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

func (c *cli) shareCmd() *cobra.Command {
	var (
		origin string
		copyIt bool
	)
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a share link for the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.load()
			if err != nil {
				return err
			}
			link, err := share.GenerateShareableURL(shareOrigin(origin), store.Snapshot())
			if err != nil {
				return fmt.Errorf("generate share link: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if copyIt {
				if share.CopyToClipboard(cmd.Context(), c.clipboard, link) {
					fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), "could not copy to clipboard")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "", "site origin (defaults to APP_PUBLIC_BASE_URL)")
	cmd.Flags().BoolVar(&copyIt, "copy", false, "also copy the link to the clipboard")
	return cmd
}

func (c *cli) decodeCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "decode <token|url>",
		Short: "Decode a share token or link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := share.ExtractToken(args[0])
			if err != nil {
				return err
			}
			data, _, err := share.DecodeDetailed(token)
			if err != nil {
				return fmt.Errorf("invalid or expired share link: %w", err)
			}
			if save {
				if err := editor.FromShareData(data).SaveDraft(c.draftPath); err != nil {
					return err
				}
			}
			return c.render(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "replace the draft with the decoded lineup")
	return cmd
}

func (c *cli) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token|url>",
		Short: "Describe a share token without failing on bad input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := share.ExtractToken(args[0])
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), share.Inspect(token))
		},
	}
}
