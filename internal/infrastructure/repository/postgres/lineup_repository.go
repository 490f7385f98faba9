package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/id"
	qb "github.com/Pranay-Prat/football-lineup-maker/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) Create(ctx context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	query, args, err := qb.InsertModel("lineups", lineupTableModel{
		ID:            item.ID,
		UserID:        item.UserID,
		Title:         item.Title,
		Name:          item.Name,
		FormationName: item.FormationName,
		Players:       playersColumn(item.Players),
		Background:    item.Background,
		PlayerColor:   item.PlayerColor,
		IsPublic:      item.IsPublic,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("build insert lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return lineup.Lineup{}, fmt.Errorf("insert lineup %s: already exists: %w", item.ID, err)
		}
		return lineup.Lineup{}, fmt.Errorf("insert lineup: %w", err)
	}
	return lineupFromRow(row), nil
}

func (r *LineupRepository) GetByID(ctx context.Context, lineupID string) (lineup.Lineup, bool, error) {
	// id column is uuid; anything else can never match.
	if !id.Valid(lineupID) {
		return lineup.Lineup{}, false, nil
	}
	query, args, err := qb.Select(lineupColumns...).From("lineups").
		Where(qb.Eq("id", lineupID)).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}
	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) ListByUser(ctx context.Context, userID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select(lineupColumns...).From("lineups").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by user query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by user: %w", err)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

func (r *LineupRepository) Delete(ctx context.Context, lineupID string) (bool, error) {
	if !id.Valid(lineupID) {
		return false, nil
	}
	query, args, err := qb.DeleteFrom("lineups").Where(qb.Eq("id", lineupID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete lineup query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete lineup: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lineup rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *LineupRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	if !id.Valid(userID) {
		return 0, nil
	}
	query, args, err := qb.DeleteFrom("lineups").Where(qb.Eq("user_id", userID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete user lineups query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete user lineups: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete user lineups rows affected: %w", err)
	}
	return int(affected), nil
}
