package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/theme"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/id"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

const defaultShareWorkerCount = 4

type SaveLineupInput struct {
	Title         string
	Name          string
	FormationName string
	Players       []lineup.PlayerPosition
	Background    string
	PlayerColor   string
	IsPublic      bool
}

// LineupSummary is a saved lineup together with its share URL.
type LineupSummary struct {
	Lineup   lineup.Lineup
	ShareURL string
}

type LineupService struct {
	lineupRepo  lineup.Repository
	userRepo    user.Repository
	idGen       id.Generator
	rules       lineup.Rules
	workerCount int
	logger      *logging.Logger
	now         func() time.Time
}

func NewLineupService(
	lineupRepo lineup.Repository,
	userRepo user.Repository,
	idGen id.Generator,
	workerCount int,
	logger *logging.Logger,
) *LineupService {
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if workerCount <= 0 {
		workerCount = defaultShareWorkerCount
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		lineupRepo:  lineupRepo,
		userRepo:    userRepo,
		idGen:       idGen,
		rules:       lineup.DefaultRules(),
		workerCount: workerCount,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *LineupService) Save(ctx context.Context, externalUserID string, input SaveLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Save")
	defer span.End()

	input.Title = strings.TrimSpace(input.Title)
	input.Name = strings.TrimSpace(input.Name)
	input.FormationName = strings.TrimSpace(input.FormationName)
	input.Background = strings.TrimSpace(input.Background)
	input.PlayerColor = strings.TrimSpace(input.PlayerColor)

	switch {
	case input.Title == "":
		return lineup.Lineup{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	case input.Name == "":
		return lineup.Lineup{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case input.Players == nil:
		return lineup.Lineup{}, fmt.Errorf("%w: players are required", ErrInvalidInput)
	case input.Background == "":
		return lineup.Lineup{}, fmt.Errorf("%w: background is required", ErrInvalidInput)
	}
	if err := lineup.ValidatePlayers(input.Players, s.rules); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if input.PlayerColor == "" {
		input.PlayerColor = theme.DefaultPlayerColor().Hex
	}

	owner, err := s.resolveUser(ctx, externalUserID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	lineupID, err := s.idGen.NewID()
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
	}

	now := s.now().UTC()
	created, err := s.lineupRepo.Create(ctx, lineup.Lineup{
		ID:            lineupID,
		UserID:        owner.ID,
		Title:         input.Title,
		Name:          input.Name,
		FormationName: input.FormationName,
		Players:       share.ClonePlayers(input.Players),
		Background:    input.Background,
		PlayerColor:   input.PlayerColor,
		IsPublic:      input.IsPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("create lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup saved",
		"lineup_id", created.ID,
		"user_id", owner.ID,
		"players", len(created.Players),
	)
	return created, nil
}

// ListMine returns the caller's lineups, newest first, each with a share URL.
func (s *LineupService) ListMine(ctx context.Context, externalUserID, origin string) ([]LineupSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ListMine")
	defer span.End()

	owner, err := s.resolveUser(ctx, externalUserID)
	if err != nil {
		return nil, err
	}

	items, err := s.lineupRepo.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list lineups by user: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	out := make([]LineupSummary, len(items))
	if len(items) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(min(s.workerCount, len(items)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	errs := make([]error, len(items))
	var workers sync.WaitGroup
	for i, item := range items {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			url, err := share.GenerateShareableURL(origin, item.ShareData(theme.ResolvePitchColor(item.Background)))
			if err != nil {
				errs[i] = fmt.Errorf("share url for lineup %s: %w", item.ID, err)
				return
			}
			out[i] = LineupSummary{Lineup: item, ShareURL: url}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit share task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a lineup owned by the caller or marked public.
func (s *LineupService) Get(ctx context.Context, externalUserID, lineupID string) (_ lineup.Lineup, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get", attribute.String("lineup.id", lineupID))
	defer func() { endSpan(span, err) }()

	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup_id is required", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByID(ctx, lineupID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by id: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}
	if item.IsPublic {
		return item, nil
	}

	owner, err := s.resolveUser(ctx, externalUserID)
	if err != nil {
		return lineup.Lineup{}, err
	}
	if !item.VisibleTo(owner.ID) {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}
	return item, nil
}

func (s *LineupService) Delete(ctx context.Context, externalUserID, lineupID string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Delete", attribute.String("lineup.id", lineupID))
	defer func() { endSpan(span, err) }()

	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return fmt.Errorf("%w: lineup_id is required", ErrInvalidInput)
	}

	owner, err := s.resolveUser(ctx, externalUserID)
	if err != nil {
		return err
	}

	item, exists, err := s.lineupRepo.GetByID(ctx, lineupID)
	if err != nil {
		return fmt.Errorf("get lineup by id: %w", err)
	}
	if !exists || item.UserID != owner.ID {
		return fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}

	deleted, err := s.lineupRepo.Delete(ctx, lineupID)
	if err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}

	s.logger.InfoContext(ctx, "lineup deleted", "lineup_id", lineupID, "user_id", owner.ID)
	return nil
}

func (s *LineupService) ShareLink(ctx context.Context, externalUserID, lineupID, origin string) (ShareLink, error) {
	item, err := s.Get(ctx, externalUserID, lineupID)
	if err != nil {
		return ShareLink{}, err
	}

	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ShareLink{}, fmt.Errorf("%w: origin is required", ErrInvalidInput)
	}

	token, err := share.Encode(item.ShareData(theme.ResolvePitchColor(item.Background)))
	if err != nil {
		return ShareLink{}, fmt.Errorf("encode share token: %w", err)
	}
	return ShareLink{Token: token, URL: share.BuildShareURL(origin, token)}, nil
}

func (s *LineupService) resolveUser(ctx context.Context, externalUserID string) (user.User, error) {
	externalUserID = strings.TrimSpace(externalUserID)
	if externalUserID == "" {
		return user.User{}, fmt.Errorf("%w: user is required", ErrUnauthorized)
	}

	item, exists, err := s.userRepo.GetByExternalID(ctx, externalUserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by external id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return item, nil
}
