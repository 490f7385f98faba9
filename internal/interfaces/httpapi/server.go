package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

// RouterConfig carries the router settings that come from configuration.
type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	WebhookToken       string
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerWebhookRoutes(mux, handler, cfg.WebhookToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

// recoverPanic turns a handler panic into a 500 envelope. Panics after the
// response has started only get logged.
func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			ctx := r.Context()
			logger.ErrorContext(ctx, "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
			failSpan(ctx, fmt.Errorf("panic: %v", rec))
			writeInternalError(ctx, w)
		}()
		next.ServeHTTP(w, r)
	})
}
