// Package mirror serves a local, cached copy of the mod database API.
//
// Responses keep the upstream envelope ({"statuscode": "200", "<key>": ...}),
// so existing API clients can point at the mirror unchanged. Mods and authors
// are served from a [vintagestory.CachedClient]; tags, game versions and
// comments are proxied on every request.
package mirror

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/observability"
)

// Server answers API requests from a cached gateway.
type Server struct {
	client   *vintagestory.CachedClient
	counters *observability.Counters
	logger   *log.Logger
	started  time.Time
}

// New creates a mirror over client. counters may be nil; when set, its
// snapshot is served at /debug/stats.
func New(client *vintagestory.CachedClient, counters *observability.Counters, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{client: client, counters: counters, logger: logger, started: time.Now()}
}

// Handler returns the HTTP routes:
//
//	GET  /api/mods, /api/mod/{id}, /api/tags, /api/authors,
//	     /api/author/{id}, /api/gameversions, /api/comments/{assetid}
//	GET  /api/random/{kind}, /api/random/comment/{assetid}
//	GET  /debug/stats
//	POST /debug/cache/clear
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/mods", s.handleList("mods", func(ctx context.Context) (any, error) { return s.client.ListMods(ctx) }))
		r.Get("/tags", s.handleList("tags", func(ctx context.Context) (any, error) { return s.client.ListTags(ctx) }))
		r.Get("/authors", s.handleList("authors", func(ctx context.Context) (any, error) { return s.client.ListAuthors(ctx) }))
		r.Get("/gameversions", s.handleList("gameversions", func(ctx context.Context) (any, error) { return s.client.ListGameVersions(ctx) }))
		r.Get("/mod/{id}", s.handleByID("mod", func(ctx context.Context, id int) (any, error) { return s.client.GetMod(ctx, id) }))
		r.Get("/author/{id}", s.handleByID("author", func(ctx context.Context, id int) (any, error) { return s.client.GetAuthor(ctx, id) }))
		r.Get("/comments/{id}", s.handleByID("comments", func(ctx context.Context, id int) (any, error) { return s.client.ListComments(ctx, id) }))
		r.Get("/random/{kind}", s.handleRandom)
		r.Get("/random/comment/{id}", s.handleRandomComment)
	})

	r.Route("/debug", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Post("/cache/clear", s.handleClear)
	})

	return r
}

func (s *Server) handleList(key string, fetch func(context.Context) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeEnvelope(w, http.StatusOK, key, v)
	}
}

func (s *Server) handleByID(key string, fetch func(context.Context, int) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := errors.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		v, err := fetch(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeEnvelope(w, http.StatusOK, key, v)
	}
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		key string
		v   any
		err error
	)
	switch kind := chi.URLParam(r, "kind"); kind {
	case "mod":
		key = "mod"
		v, err = vintagestory.RandomMod(ctx, s.client)
	case "tag":
		key = "tag"
		v, err = vintagestory.RandomTag(ctx, s.client)
	case "author":
		key = "author"
		v, err = vintagestory.RandomAuthor(ctx, s.client)
	case "gameversion", "version":
		key = "gameversion"
		v, err = vintagestory.RandomGameVersion(ctx, s.client)
	case "comment":
		err = errors.New(errors.ErrCodeInvalidInput, "random comment needs an asset ID: /random/comment/{assetid}")
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "unknown random kind %q", kind)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, key, v)
}

func (s *Server) handleRandomComment(w http.ResponseWriter, r *http.Request) {
	id, err := errors.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := vintagestory.RandomComment(r.Context(), s.client, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, "comment", c)
}

// Stats is the body of /debug/stats.
type Stats struct {
	Uptime   string                  `json:"uptime"`
	Cache    vintagestory.CacheStats `json:"cache"`
	Counters map[string]int64        `json:"counters,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := Stats{
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Cache:  s.client.Stats(),
	}
	if s.counters != nil {
		st.Counters = s.counters.Snapshot()
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.client.ClearAll(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("cache cleared", "remote", r.RemoteAddr)
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps an error code to the HTTP status reported to clients.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrEmptyCollection):
		return http.StatusNotFound
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Warn("upstream failure", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"statuscode": strconv.Itoa(status),
		"code":       string(errors.GetCode(err)),
		"message":    errors.UserMessage(err),
	})
}

func (s *Server) writeEnvelope(w http.ResponseWriter, status int, key string, v any) {
	writeJSON(w, status, map[string]any{
		"statuscode": strconv.Itoa(status),
		key:          v,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request at debug level with its chi request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// ListenAndServe runs the mirror on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("mirror listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
