package memory

import (
	"time"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/theme"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
)

const (
	DemoUserID         = "6f1c2a9e-3b7d-4c1e-9a55-0d2b8e4f7a10"
	DemoUserExternalID = "user_demo"
	DemoLineupID       = "2a8f4c61-95de-4b0a-8c3e-7d1f6b9e2c45"
)

var seedTime = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// SeedUsers returns the account used by the in-memory driver for local development.
func SeedUsers() []user.User {
	return []user.User{
		{
			ID:         DemoUserID,
			ExternalID: DemoUserExternalID,
			Email:      "demo@lineups.local",
			Name:       "Demo Manager",
			CreatedAt:  seedTime,
		},
	}
}

func SeedLineups() []lineup.Lineup {
	f := formation.Default()
	return []lineup.Lineup{
		{
			ID:            DemoLineupID,
			UserID:        DemoUserID,
			Title:         "Demo XI",
			Name:          "Demo FC",
			FormationName: f.Name,
			Players:       f.Players(),
			Background:    theme.DefaultPitchColor().Label,
			PlayerColor:   theme.DefaultPlayerColor().Hex,
			IsPublic:      true,
			CreatedAt:     seedTime,
			UpdatedAt:     seedTime,
		},
	}
}

// NewSeededLineupRepository returns a repository preloaded with items.
func NewSeededLineupRepository(items []lineup.Lineup) *LineupRepository {
	repo := NewLineupRepository()
	for _, item := range items {
		repo.items[item.ID] = cloneLineup(item)
	}
	return repo
}
