package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) Create(_ context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return lineup.Lineup{}, fmt.Errorf("lineup %s already exists", item.ID)
	}
	r.items[item.ID] = cloneLineup(item)
	return cloneLineup(item), nil
}

func (r *LineupRepository) GetByID(_ context.Context, lineupID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupID]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) ListByUser(_ context.Context, userID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, cloneLineup(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LineupRepository) Delete(_ context.Context, lineupID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[lineupID]; !ok {
		return false, nil
	}
	delete(r.items, lineupID)
	return true, nil
}

func (r *LineupRepository) DeleteByUser(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for lineupID, item := range r.items {
		if item.UserID == userID {
			delete(r.items, lineupID)
			removed++
		}
	}
	return removed, nil
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.Players = share.ClonePlayers(item.Players)
	return copied
}
