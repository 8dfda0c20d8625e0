package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the event-ingress HTTP surface. The platform backend
// calls it once per record creation with the new record's full content
// and generated id; it is a server-to-server surface, authenticated by a
// shared bearer token.
func NewRouter(moderation ModerationTrigger, crisis CrisisTrigger, authToken string, logger *logrus.Logger) http.Handler {
	h := &eventHandlers{moderation: moderation, crisis: crisis, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(requireBearerToken(authToken, logger))
		r.Post("/events/posts", h.handlePostCreated)
		r.Post("/events/checkins", h.handleCheckinCreated)
	})

	return r
}

func requireBearerToken(token string, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				logger.Warnf("Rejected event request to %s: bad or missing bearer token.", r.URL.Path)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
