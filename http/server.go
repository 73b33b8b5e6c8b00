package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/linkctx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forced to stop.
const ShutdownTimeout = 5 * time.Second

// maxRequestBody bounds JSON and form payloads.
const maxRequestBody = 64 << 10

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Server serves the analyzer page and its JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address, e.g. ":8080".
	Addr string

	// Config is passed to every contextualization.
	Config linkctx.Config

	// AllowedOrigins for cross-origin API calls. Empty allows none.
	AllowedOrigins []string

	Contextualizer linkctx.Contextualizer
	Logger         *slog.Logger
}

// NewServer returns a Server with its routes registered.
// Fields must be set before Open or Handler is called.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: chi.NewRouter(),
		Logger: slog.Default(),
	}
	s.router.Use(s.requestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/", s.handleIndex)
	s.router.Post("/", s.handleAnalyzeForm)
	s.router.Post("/api/contextualize", s.handleContextualize)
	return s
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}).Handler(s.router)
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() error {
	if s.Contextualizer == nil {
		return linkctx.Errorf(linkctx.ECONFIG, "server has no contextualizer")
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFromContext returns the ID assigned to the current request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reuses the caller's X-Request-ID or assigns a new UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", RequestIDFromContext(r.Context()),
				"took", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// contextualizeRequest is the body of POST /api/contextualize.
type contextualizeRequest struct {
	URL string `json:"url"`
}

// contextualizeResponse carries either a result with its links or an error.
type contextualizeResponse struct {
	Result *linkctx.Result    `json:"result,omitempty"`
	Links  *linkctx.Artifacts `json:"links,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func (s *Server) handleContextualize(w http.ResponseWriter, r *http.Request) {
	var req contextualizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.writeError(w, r, linkctx.Errorf(linkctx.EINVALID, "Invalid JSON body."))
		return
	}

	result, err := s.contextualize(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	links := linkctx.NewArtifacts(result)
	writeJSON(w, http.StatusOK, contextualizeResponse{Result: result, Links: &links})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageData{})
}

func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	input := r.FormValue("url")

	data := pageData{Input: input}
	result, err := s.contextualize(r.Context(), input)
	if err != nil {
		s.logError(r, err)
		data.Error = linkctx.DisplayMessage(err)
		s.renderPage(w, r, ErrorStatusCode(linkctx.ErrorCode(err)), data)
		return
	}
	data.Result = result
	data.Links = linkctx.NewArtifacts(result)
	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) contextualize(ctx context.Context, input string) (*linkctx.Result, error) {
	if linkctx.NormalizeURL(input) == "" {
		return nil, linkctx.Errorf(linkctx.EINVALID, "URL required")
	}
	return s.Contextualizer.Contextualize(ctx, s.Config, input)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.Logger.Error("render page", "err", err, "request_id", RequestIDFromContext(r.Context()))
	}
}

// writeError writes err as a JSON error body with the status its code maps to.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	writeJSON(w, ErrorStatusCode(linkctx.ErrorCode(err)), contextualizeResponse{Error: linkctx.DisplayMessage(err)})
}

func (s *Server) logError(r *http.Request, err error) {
	level := slog.LevelWarn
	if linkctx.ErrorCode(err) == linkctx.EINTERNAL {
		level = slog.LevelError
	}
	s.Logger.Log(r.Context(), level, "request failed",
		"path", r.URL.Path,
		"code", linkctx.ErrorCode(err),
		"err", err,
		"request_id", RequestIDFromContext(r.Context()),
	)
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case linkctx.EINVALID:
		return http.StatusBadRequest
	case linkctx.ECONFIG:
		return http.StatusServiceUnavailable
	case linkctx.ENOCONTENT:
		return http.StatusBadGateway
	case linkctx.ECONFLICT:
		return http.StatusConflict
	case linkctx.ENOTFOUND:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
