package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	qb "github.com/Pranay-Prat/football-lineup-maker/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns...).
		From("users").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by external id: %w", err)
	}
	return userFromRow(row), true, nil
}

// UpsertByExternalID inserts the user, or returns the stored row when the external id is taken.
func (r *UserRepository) UpsertByExternalID(ctx context.Context, item user.User) (user.User, error) {
	query, args, err := qb.InsertModel("users", userTableModel{
		ID:         item.ID,
		ExternalID: item.ExternalID,
		Email:      item.Email,
		Name:       nullString(item.Name),
		Image:      nullString(item.Image),
		CreatedAt:  item.CreatedAt,
	}, "ON CONFLICT (external_id) DO NOTHING RETURNING "+strings.Join(userColumns, ", "))
	if err != nil {
		return user.User{}, fmt.Errorf("build upsert user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return user.User{}, fmt.Errorf("upsert user: %w", err)
		}
		existing, ok, getErr := r.GetByExternalID(ctx, item.ExternalID)
		if getErr != nil {
			return user.User{}, getErr
		}
		if !ok {
			return user.User{}, fmt.Errorf("upsert user %s: row vanished after conflict", item.ExternalID)
		}
		return existing, nil
	}
	return userFromRow(row), nil
}

func (r *UserRepository) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	query, args, err := qb.DeleteFrom("users").Where(qb.Eq("external_id", externalID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete user query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user rows affected: %w", err)
	}
	return affected > 0, nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Email:      row.Email,
		Name:       row.Name.String,
		Image:      row.Image.String,
		CreatedAt:  row.CreatedAt,
	}
}
