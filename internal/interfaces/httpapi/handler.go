package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	shareService   *usecase.ShareService
	lineupService  *usecase.LineupService
	accountService *usecase.AccountService
	publicBaseURL  string
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	shareService *usecase.ShareService,
	lineupService *usecase.LineupService,
	accountService *usecase.AccountService,
	publicBaseURL string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		shareService:   shareService,
		lineupService:  lineupService,
		accountService: accountService,
		publicBaseURL:  publicBaseURL,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a bounded request body into dst. Strict mode rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
