package postgres

import (
	"database/sql"
	"time"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	qb "github.com/Pranay-Prat/football-lineup-maker/internal/platform/querybuilder"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

// lineupTableModel mirrors the lineups table; it is used for inserts and scans.
type lineupTableModel struct {
	ID            string        `db:"id"`
	UserID        string        `db:"user_id"`
	Title         string        `db:"title"`
	Name          string        `db:"name"`
	FormationName string        `db:"formation_name"`
	Players       playersColumn `db:"players"`
	Background    string        `db:"background"`
	PlayerColor   string        `db:"player_color"`
	IsPublic      bool          `db:"is_public"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

var (
	lineupColumns = qb.MustColumns(lineupTableModel{})
	userColumns   = qb.MustColumns(userTableModel{})
)

type userTableModel struct {
	ID         string         `db:"id"`
	ExternalID string         `db:"external_id"`
	Email      string         `db:"email"`
	Name       sql.NullString `db:"name"`
	Image      sql.NullString `db:"image"`
	CreatedAt  time.Time      `db:"created_at"`
}

func lineupFromRow(row lineupTableModel) lineup.Lineup {
	return lineup.Lineup{
		ID:            row.ID,
		UserID:        row.UserID,
		Title:         row.Title,
		Name:          row.Name,
		FormationName: row.FormationName,
		Players:       share.ClonePlayers(row.Players),
		Background:    row.Background,
		PlayerColor:   row.PlayerColor,
		IsPublic:      row.IsPublic,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
