package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/pathgraph/internal/transport/middleware"
)

const learnerPrefix = "/v1/projects/{project}/communities/{community}/users/{user}"

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	APIKey string
	// Tokens validates bearer tokens; nil accepts the API key only.
	Tokens             middleware.TokenValidator
	TraverseRatePerMin int
}

// NewRouter wires the engine endpoints and the health probes. Engine routes
// require the API key or a service token; probes do not.
func NewRouter(
	logger *slog.Logger,
	traversalH *TraversalHandler,
	healthH *HealthHandler,
	limiter *middleware.RateLimiter,
	cfg RouterConfig,
) http.Handler {
	perLearner := limiter.Limit(cfg.TraverseRatePerMin, middleware.ByPathValues("project", "community", "user"))

	v1 := http.NewServeMux()
	v1.HandleFunc("GET "+learnerPrefix+"/state", traversalH.State)
	v1.HandleFunc("GET "+learnerPrefix+"/options", traversalH.Options)
	v1.HandleFunc("GET "+learnerPrefix+"/profile", traversalH.Profile)
	v1.Handle("POST "+learnerPrefix+"/traverse", perLearner(http.HandlerFunc(traversalH.Traverse)))
	v1.HandleFunc("PUT "+learnerPrefix+"/preferences/{name}", traversalH.SetPreference)
	v1.HandleFunc("GET /v1/projects/{project}/communities/{community}/leaderboard", traversalH.Leaderboard)

	root := http.NewServeMux()
	root.Handle("/v1/", middleware.Chain(
		middleware.Auth(cfg.APIKey, cfg.Tokens, logger),
		middleware.Logger(logger),
	)(v1))
	root.HandleFunc("GET /live", healthH.Live)
	root.HandleFunc("GET /ready", healthH.Ready)
	root.Handle("GET /health", middleware.Logger(logger)(http.HandlerFunc(healthH.Health)))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)(root)
}
