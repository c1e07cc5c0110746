package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/pathgraph/pkg/ctxutil"
)

const (
	// APIKeyHeader carries the shared service key.
	APIKeyHeader = "X-Api-Key"
	// CallerHeader optionally names the calling service for the logs when it
	// authenticates with the shared key.
	CallerHeader = "X-Caller"

	defaultCaller = "anonymous"
)

// TokenValidator resolves a bearer token to the caller it was issued to.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// Auth returns middleware that admits a request presenting either a valid
// bearer token or the shared key in X-Api-Key, and records the caller name
// in the context. A token names its caller; a key-authenticated caller names
// itself in X-Caller. With neither a key nor a validator configured every
// request is admitted.
func Auth(key string, tokens TokenValidator, logger *slog.Logger) Middleware {
	want := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearer := extractBearerToken(r); bearer != "" && tokens != nil {
				caller, err := tokens.Validate(bearer)
				if err != nil {
					reject(w, r, logger, "token rejected", err)
					return
				}
				next.ServeHTTP(w, r.WithContext(ctxutil.WithCaller(r.Context(), caller)))
				return
			}

			if key != "" {
				got := []byte(r.Header.Get(APIKeyHeader))
				if subtle.ConstantTimeCompare(got, want) != 1 {
					reject(w, r, logger, "api key rejected", nil)
					return
				}
			} else if tokens != nil {
				reject(w, r, logger, "bearer token required", nil)
				return
			}

			caller := r.Header.Get(CallerHeader)
			if caller == "" {
				caller = defaultCaller
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithCaller(r.Context(), caller)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	attrs := []any{
		slog.String("path", r.URL.Path),
		slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.WarnContext(r.Context(), msg, attrs...)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
