package httpapi

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
	"github.com/Pranay-Prat/football-lineup-maker/internal/usecase"
)

func (h *Handler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateShareLink")
	defer span.End()

	var req shareableLineupDTO
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	annotateSpan(ctx, attribute.Int("share.players", len(req.Players)))
	origin := resolveShareOrigin(ctx, r, h.publicBaseURL)
	link, err := h.shareService.Create(ctx, origin, shareableFromDTO(ctx, req))
	if err != nil {
		h.logger.WarnContext(ctx, "create share link failed", "players", len(req.Players), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, shareLinkToDTO(link))
}

// ResolveShareLink decodes ?data=<token>. Any decode failure is reported as an invalid link.
func (h *Handler) ResolveShareLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveShareLink")
	defer span.End()

	token := r.URL.Query().Get(share.QueryParam)
	if token == "" {
		writeError(ctx, w, fmt.Errorf("%w: %s query parameter is required", usecase.ErrInvalidShareLink, share.QueryParam))
		return
	}

	annotateSpan(ctx, attribute.Int("share.token_length", len(token)))
	data, err := h.shareService.Resolve(ctx, token)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, shareableToDTO(ctx, data))
}
