package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// playersColumn stores lineup players as a JSONB array.
type playersColumn []lineup.PlayerPosition

func (c playersColumn) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	raw, err := sonic.Marshal([]lineup.PlayerPosition(c))
	if err != nil {
		return nil, fmt.Errorf("marshal players: %w", err)
	}
	return raw, nil
}

func (c *playersColumn) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = playersColumn{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan players: unsupported type %T", src)
	}

	var players []lineup.PlayerPosition
	if err := sonic.Unmarshal(raw, &players); err != nil {
		return fmt.Errorf("unmarshal players: %w", err)
	}
	if players == nil {
		players = []lineup.PlayerPosition{}
	}
	*c = players
	return nil
}
