package cache

import (
	"context"
	"time"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	basecache "github.com/Pranay-Prat/football-lineup-maker/internal/platform/cache"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

// LineupRepository caches rows by id and lists by owner. Writes go through first and
// invalidate afterwards; the stores refuse to keep a load that overlapped the invalidation.
type LineupRepository struct {
	next  lineup.Repository
	rows  *basecache.Store[lineupLookup]
	lists *basecache.Store[[]lineup.Lineup]
}

func NewLineupRepository(next lineup.Repository, ttl time.Duration) *LineupRepository {
	return &LineupRepository{
		next:  next,
		rows:  basecache.NewStore[lineupLookup](ttl),
		lists: basecache.NewStore[[]lineup.Lineup](ttl),
	}
}

func (r *LineupRepository) Create(ctx context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return lineup.Lineup{}, err
	}
	r.rows.Delete(ctx, created.ID)
	r.lists.Delete(ctx, created.UserID)
	return created, nil
}

func (r *LineupRepository) GetByID(ctx context.Context, lineupID string) (lineup.Lineup, bool, error) {
	found, err := r.rows.GetOrLoad(ctx, lineupID, func(ctx context.Context) (lineupLookup, error) {
		item, exists, err := r.next.GetByID(ctx, lineupID)
		return lineupLookup{item: item, exists: exists}, err
	})
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return cloneLineup(found.item), found.exists, nil
}

func (r *LineupRepository) ListByUser(ctx context.Context, userID string) ([]lineup.Lineup, error) {
	items, err := r.lists.GetOrLoad(ctx, userID, func(ctx context.Context) ([]lineup.Lineup, error) {
		return r.next.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]lineup.Lineup, len(items))
	for i, item := range items {
		out[i] = cloneLineup(item)
	}
	return out, nil
}

// Delete drops the cached row and every list, since the owner is not known up front.
func (r *LineupRepository) Delete(ctx context.Context, lineupID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, lineupID)
	if err != nil {
		return false, err
	}
	r.rows.Delete(ctx, lineupID)
	r.lists.Clear()
	return deleted, nil
}

// DeleteByUser drops the owner's list and every cached row; rows are not indexed by owner.
func (r *LineupRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	removed, err := r.next.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	r.rows.Clear()
	r.lists.Delete(ctx, userID)
	return removed, nil
}

// lineupLookup also records misses.
type lineupLookup struct {
	item   lineup.Lineup
	exists bool
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	item.Players = share.ClonePlayers(item.Players)
	return item
}

type UserRepository struct {
	next  user.Repository
	users *basecache.Store[user.User]
}

func NewUserRepository(next user.Repository, ttl time.Duration) *UserRepository {
	return &UserRepository{next: next, users: basecache.NewStore[user.User](ttl)}
}

// GetByExternalID caches only hits, so a user created by a webhook is visible immediately.
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (user.User, bool, error) {
	if item, ok := r.users.Get(ctx, externalID); ok {
		return item, true, nil
	}

	item, exists, err := r.next.GetByExternalID(ctx, externalID)
	if err != nil || !exists {
		return item, exists, err
	}
	r.users.Set(ctx, externalID, item)
	return item, true, nil
}

func (r *UserRepository) UpsertByExternalID(ctx context.Context, item user.User) (user.User, error) {
	stored, err := r.next.UpsertByExternalID(ctx, item)
	if err != nil {
		return user.User{}, err
	}
	r.users.Set(ctx, stored.ExternalID, stored)
	return stored, nil
}

func (r *UserRepository) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	deleted, err := r.next.DeleteByExternalID(ctx, externalID)
	if err != nil {
		return false, err
	}
	r.users.Delete(ctx, externalID)
	return deleted, nil
}
