package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type ShareLink struct {
	Token string
	URL   string
}

// ShareService turns lineups into share links and back.
type ShareService struct {
	decoder        *share.Decoder
	maxTokenLength int
	rules          lineup.Rules
	logger         *logging.Logger
}

func NewShareService(decoder *share.Decoder, maxTokenLength int, logger *logging.Logger) *ShareService {
	if logger == nil {
		logger = logging.Default()
	}
	if decoder == nil {
		decoder = share.NewDecoder(logger, share.DefaultLimits())
	}
	if maxTokenLength <= 0 {
		maxTokenLength = share.DefaultMaxTokenLength
	}
	return &ShareService{
		decoder:        decoder,
		maxTokenLength: maxTokenLength,
		rules:          lineup.DefaultRules(),
		logger:         logger,
	}
}

func (s *ShareService) Create(ctx context.Context, origin string, data share.ShareableLineupData) (_ ShareLink, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShareService.Create", attribute.Int("share.players", len(data.Players)))
	defer func() { endSpan(span, err) }()

	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ShareLink{}, fmt.Errorf("%w: origin is required", ErrInvalidInput)
	}
	if err := lineup.ValidatePlayers(data.Players, s.rules); err != nil {
		return ShareLink{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	token, err := share.Encode(data)
	if err != nil {
		return ShareLink{}, fmt.Errorf("encode share token: %w", err)
	}
	if len(token) > s.maxTokenLength {
		return ShareLink{}, fmt.Errorf("%w: lineup is too large to share (%d > %d)", ErrInvalidInput, len(token), s.maxTokenLength)
	}

	s.logger.DebugContext(ctx, "share link created",
		"token_length", len(token),
		"players", len(data.Players),
	)
	return ShareLink{Token: token, URL: share.BuildShareURL(origin, token)}, nil
}

func (s *ShareService) Resolve(ctx context.Context, token string) (share.ShareableLineupData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShareService.Resolve", attribute.Int("share.token_length", len(token)))
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return share.ShareableLineupData{}, fmt.Errorf("%w: data is required", ErrInvalidShareLink)
	}
	if len(token) > s.maxTokenLength {
		return share.ShareableLineupData{}, fmt.Errorf("%w: token too long", ErrInvalidShareLink)
	}

	data, ok := s.decoder.Decode(ctx, token)
	if !ok {
		return share.ShareableLineupData{}, ErrInvalidShareLink
	}
	return data, nil
}
