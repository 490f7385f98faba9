package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/theme"
	"github.com/Pranay-Prat/football-lineup-maker/internal/editor"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type draftView struct {
	share.ShareableLineupData `yaml:",inline"`
	Lines                     theme.CategoryCount `json:"lines" yaml:"lines"`
}

func (c *cli) newCmd() *cobra.Command {
	var (
		formationName string
		teamName      string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a fresh draft from a formation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, ok := formation.Find(formationName)
			if !ok {
				return fmt.Errorf("unknown formation %q (available: %s)", formationName, formationNames())
			}
			store := editor.NewStore()
			store.ApplyFormation(f)
			store.SetTeamName(strings.TrimSpace(teamName))
			if err := store.SaveDraft(c.draftPath); err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), viewOf(store))
		},
	}
	cmd.Flags().StringVar(&formationName, "formation", formation.Default().Name, "formation preset")
	cmd.Flags().StringVar(&teamName, "team", "", "team name")
	return cmd
}

func (c *cli) setPlayerCmd() *cobra.Command {
	var (
		name        string
		number      int
		clearNumber bool
	)
	cmd := &cobra.Command{
		Use:   "set-player <id>",
		Short: "Set a player's name or shirt number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}
			nameSet := cmd.Flags().Changed("name")
			numberSet := cmd.Flags().Changed("number")
			if !nameSet && !numberSet && !clearNumber {
				return fmt.Errorf("nothing to change: pass --name, --number or --clear-number")
			}
			if numberSet && (number < 0 || number > 999) {
				return fmt.Errorf("number must be between 0 and 999")
			}

			return c.mutate(func(store *editor.Store) error {
				found := true
				if nameSet {
					found = store.UpdatePlayerName(playerID, strings.TrimSpace(name))
				}
				if numberSet {
					found = store.UpdatePlayerNumber(playerID, &number) && found
				} else if clearNumber {
					found = store.UpdatePlayerNumber(playerID, nil) && found
				}
				if !found {
					return fmt.Errorf("player %d is not on the pitch", playerID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "player name")
	cmd.Flags().IntVar(&number, "number", 0, "shirt number")
	cmd.Flags().BoolVar(&clearNumber, "clear-number", false, "remove the shirt number")
	return cmd
}

func (c *cli) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <top> <left>",
		Short: "Move a player to a pitch position (percentages)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}
			top, err := parsePercent("top", args[1])
			if err != nil {
				return err
			}
			left, err := parsePercent("left", args[2])
			if err != nil {
				return err
			}

			return c.mutate(func(store *editor.Store) error {
				if !store.UpdatePlayerPosition(playerID, top, left) {
					return fmt.Errorf("player %d is not on the pitch", playerID)
				}
				return nil
			})
		},
	}
}

func (c *cli) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <hex|label>",
		Short: "Set the player marker color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.TrimSpace(args[0])
			if preset, ok := theme.FindPlayerColor(value); ok {
				value = preset.Hex
			} else if !strings.HasPrefix(value, "#") {
				return fmt.Errorf("unknown player color %q", value)
			}
			return c.mutate(func(store *editor.Store) error {
				store.SetPlayerColor(value)
				return nil
			})
		},
	}
}

func (c *cli) pitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pitch <label|class>",
		Short: "Set the pitch background",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color := theme.ResolvePitchColor(strings.Join(args, " "))
			if color.Value == "" {
				return fmt.Errorf("pitch color is required")
			}
			return c.mutate(func(store *editor.Store) error {
				store.SetPitchColor(color)
				return nil
			})
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.load()
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), viewOf(store))
		},
	}
}

func viewOf(store *editor.Store) draftView {
	snap := store.Snapshot()
	return draftView{ShareableLineupData: snap, Lines: theme.CountByCategory(snap.Players)}
}

func formationNames() string {
	all := formation.All()
	names := make([]string, 0, len(all))
	for _, f := range all {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

func parsePlayerID(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid player id %q", raw)
	}
	return v, nil
}

func parsePercent(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return v, nil
}
