package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /openapi.json", handler.OpenAPIJSON)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/themes", handler.ListThemes)
	mux.HandleFunc("POST /v1/lineups/share", handler.CreateShareLink)
	mux.HandleFunc("GET /v1/lineups/share", handler.ResolveShareLink)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/lineups", RequireAuth(verifier, http.HandlerFunc(handler.SaveLineup)))
	mux.Handle("GET /v1/lineups", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLineups)))
	mux.Handle("GET /v1/lineups/{lineupID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLineup)))
	mux.Handle("DELETE /v1/lineups/{lineupID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteLineup)))
	mux.Handle("GET /v1/lineups/{lineupID}/share", RequireAuth(verifier, http.HandlerFunc(handler.GetLineupShareLink)))
}

func registerWebhookRoutes(mux *http.ServeMux, handler *Handler, webhookToken string) {
	mux.Handle("POST /v1/webhooks/account", RequireWebhookToken(webhookToken, http.HandlerFunc(handler.HandleAccountWebhook)))
}
