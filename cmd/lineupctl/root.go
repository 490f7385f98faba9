package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Pranay-Prat/football-lineup-maker/internal/config"
	"github.com/Pranay-Prat/football-lineup-maker/internal/editor"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

const defaultShareOrigin = "http://localhost:3000"

type cli struct {
	draftPath string
	output    string
	clipboard share.ClipboardWriter
}

func newRootCmd(clipboard share.ClipboardWriter) *cobra.Command {
	c := &cli{clipboard: clipboard}

	root := &cobra.Command{
		Use:           "lineupctl",
		Short:         "Edit football lineups and produce share links",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			switch c.output {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output %q (want json or yaml)", c.output)
			}
		},
	}
	root.PersistentFlags().StringVarP(&c.draftPath, "file", "f", editor.DraftFileName, "draft file")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "json", "output format: json or yaml")

	root.AddCommand(
		c.newCmd(),
		c.setPlayerCmd(),
		c.moveCmd(),
		c.colorCmd(),
		c.pitchCmd(),
		c.showCmd(),
		c.shareCmd(),
		c.decodeCmd(),
		c.inspectCmd(),
	)
	return root
}

func (c *cli) load() (*editor.Store, error) {
	return editor.LoadDraft(c.draftPath)
}

// mutate loads the draft, applies fn and saves it back.
func (c *cli) mutate(fn func(*editor.Store) error) error {
	store, err := c.load()
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	return store.SaveDraft(c.draftPath)
}

func (c *cli) render(w io.Writer, v any) error {
	var (
		out []byte
		err error
	)
	switch c.output {
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		out, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", c.output, err)
	}
	_, err = w.Write(out)
	return err
}

func shareOrigin(flagValue string) string {
	for _, v := range []string{flagValue, os.Getenv("APP_PUBLIC_BASE_URL")} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return defaultShareOrigin
}
