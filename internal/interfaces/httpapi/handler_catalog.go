package httpapi

import (
	"net/http"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	formations := formation.All()
	items := make([]formationDTO, 0, len(formations))
	for _, f := range formations {
		items = append(items, formationToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListThemes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListThemes")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, themesToDTO())
}
