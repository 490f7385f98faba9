package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	"github.com/Pranay-Prat/football-lineup-maker/internal/usecase"
)

// principalKey is unexported so only RequireAuth can attach a principal.
type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}

// requirePrincipalID returns the external user id of the authenticated caller.
func (h *Handler) requirePrincipalID(ctx context.Context) (string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		return "", fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal.UserID, nil
}
