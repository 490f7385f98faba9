package httpapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

// HandleAccountWebhook syncs users from identity provider lifecycle events.
func (h *Handler) HandleAccountWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HandleAccountWebhook")
	defer span.End()

	var req accountWebhookRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	annotateSpan(ctx, attribute.String("account.event_type", req.Type))
	outcome, err := h.accountService.HandleEvent(ctx, accountEventFromDTO(req))
	if err != nil {
		h.logger.ErrorContext(ctx, "account webhook failed", "type", req.Type, "external_id", req.Data.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accountWebhookResponseDTO{Outcome: string(outcome)})
}
