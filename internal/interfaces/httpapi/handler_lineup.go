package httpapi

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Pranay-Prat/football-lineup-maker/internal/usecase"
)

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveLineupRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Save(ctx, userID, usecase.SaveLineupInput{
		Title:         req.Title,
		Name:          req.Name,
		FormationName: req.FormationName,
		Players:       playersFromDTO(ctx, req.Players),
		Background:    req.Background,
		PlayerColor:   req.PlayerColor,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lineupToDTO(ctx, item, ""))
}

func (h *Handler) ListMyLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLineups")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.lineupService.ListMine(ctx, userID, resolveShareOrigin(ctx, r, h.publicBaseURL))
	if err != nil {
		h.logger.WarnContext(ctx, "list lineups failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	annotateSpan(ctx, attribute.Int("lineup.count", len(items)))
	out := make([]lineupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, lineupToDTO(ctx, item.Lineup, item.ShareURL))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lineupID := strings.TrimSpace(r.PathValue("lineupID"))
	annotateSpan(ctx, attribute.String("lineup.id", lineupID))
	item, err := h.lineupService.Get(ctx, userID, lineupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "lineup_id", lineupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item, ""))
}

func (h *Handler) DeleteLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLineup")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lineupID := strings.TrimSpace(r.PathValue("lineupID"))
	annotateSpan(ctx, attribute.String("lineup.id", lineupID))
	if err := h.lineupService.Delete(ctx, userID, lineupID); err != nil {
		h.logger.WarnContext(ctx, "delete lineup failed", "lineup_id", lineupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": lineupID})
}

func (h *Handler) GetLineupShareLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupShareLink")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lineupID := strings.TrimSpace(r.PathValue("lineupID"))
	annotateSpan(ctx, attribute.String("lineup.id", lineupID))
	link, err := h.lineupService.ShareLink(ctx, userID, lineupID, resolveShareOrigin(ctx, r, h.publicBaseURL))
	if err != nil {
		h.logger.WarnContext(ctx, "lineup share link failed", "lineup_id", lineupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, shareLinkToDTO(link))
}
