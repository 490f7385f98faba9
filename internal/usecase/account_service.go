package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/id"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

const (
	AccountEventUserCreated = "user.created"
	AccountEventUserDeleted = "user.deleted"
)

// AccountEvent is a lifecycle event from the identity provider.
type AccountEvent struct {
	Type       string
	ExternalID string
	Emails     []string
	FirstName  string
	LastName   string
	ImageURL   string
}

type AccountEventOutcome string

const (
	AccountOutcomeCreated AccountEventOutcome = "created"
	AccountOutcomeDeleted AccountEventOutcome = "deleted"
	AccountOutcomeIgnored AccountEventOutcome = "ignored"
)

type AccountService struct {
	userRepo   user.Repository
	lineupRepo lineup.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewAccountService(userRepo user.Repository, lineupRepo lineup.Repository, idGen id.Generator, logger *logging.Logger) *AccountService {
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountService{
		userRepo:   userRepo,
		lineupRepo: lineupRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AccountService) HandleEvent(ctx context.Context, event AccountEvent) (AccountEventOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.HandleEvent")
	defer span.End()

	event.ExternalID = strings.TrimSpace(event.ExternalID)
	switch event.Type {
	case AccountEventUserCreated:
		return s.handleCreated(ctx, event)
	case AccountEventUserDeleted:
		return s.handleDeleted(ctx, event)
	default:
		s.logger.DebugContext(ctx, "ignoring account event", "type", event.Type)
		return AccountOutcomeIgnored, nil
	}
}

func (s *AccountService) handleCreated(ctx context.Context, event AccountEvent) (AccountEventOutcome, error) {
	if event.ExternalID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	email := ""
	if len(event.Emails) > 0 {
		email = strings.TrimSpace(event.Emails[0])
	}
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}

	stored, err := s.userRepo.UpsertByExternalID(ctx, user.User{
		ID:         userID,
		ExternalID: event.ExternalID,
		Email:      email,
		Name:       displayName(event.FirstName, event.LastName),
		Image:      strings.TrimSpace(event.ImageURL),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}

	s.logger.InfoContext(ctx, "account synced", "user_id", stored.ID, "external_id", stored.ExternalID)
	return AccountOutcomeCreated, nil
}

func (s *AccountService) handleDeleted(ctx context.Context, event AccountEvent) (AccountEventOutcome, error) {
	if event.ExternalID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	// lineups are removed before the account row
	owner, exists, err := s.userRepo.GetByExternalID(ctx, event.ExternalID)
	if err != nil {
		return "", fmt.Errorf("get user by external id: %w", err)
	}
	if exists {
		removed, err := s.lineupRepo.DeleteByUser(ctx, owner.ID)
		if err != nil {
			return "", fmt.Errorf("delete user lineups: %w", err)
		}
		s.logger.InfoContext(ctx, "account lineups removed", "user_id", owner.ID, "lineups", removed)
	}

	deleted, err := s.userRepo.DeleteByExternalID(ctx, event.ExternalID)
	if err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		s.logger.InfoContext(ctx, "account already absent", "external_id", event.ExternalID)
	}
	return AccountOutcomeDeleted, nil
}

func displayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
