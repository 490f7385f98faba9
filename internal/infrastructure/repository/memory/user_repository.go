package memory

import (
	"context"
	"sync"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
)

type UserRepository struct {
	mu         sync.RWMutex
	byExternal map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	byExternal := make(map[string]user.User, len(users))
	for _, item := range users {
		byExternal[item.ExternalID] = item
	}
	return &UserRepository{byExternal: byExternal}
}

func (r *UserRepository) GetByExternalID(_ context.Context, externalID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byExternal[externalID]
	return item, ok, nil
}

func (r *UserRepository) UpsertByExternalID(_ context.Context, item user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byExternal[item.ExternalID]; ok {
		return existing, nil
	}
	r.byExternal[item.ExternalID] = item
	return item, nil
}

func (r *UserRepository) DeleteByExternalID(_ context.Context, externalID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExternal[externalID]; !ok {
		return false, nil
	}
	delete(r.byExternal, externalID)
	return true, nil
}
