package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dosTaiyaki/linklist"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxImportSize limits the body accepted by POST /import.
const MaxImportSize = 10 << 20

// Server exposes a linklist.LinkService as a JSON API.
type Server struct {
	router  chi.Router
	links   linklist.LinkService
	logger  *slog.Logger
	metrics http.Handler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a Server serving links.
func NewServer(links linklist.LinkService, opts ...ServerOption) *Server {
	s := &Server{
		links:  links,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/links", s.handleListLinks)
	r.Post("/links", s.handleCreateLink)
	r.Get("/links/{id}", s.handleGetLink)
	r.Patch("/links/{id}", s.handleUpdateLink)
	r.Delete("/links/{id}", s.handleDeleteLink)
	r.Get("/categories", s.handleCategories)
	r.Post("/import", s.handleImport)
	r.Get("/export", s.handleExport)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(begin),
		)
	})
}

// linkRequest is the body of POST /links.
type linkRequest struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	Favicon  string   `json:"favicon"`
}

type linkResponse struct {
	*linklist.Link
	Warning string `json:"warning,omitempty"`
}

type linksResponse struct {
	Links   []*linklist.Link `json:"links"`
	Warning string           `json:"warning,omitempty"`
}

type categoriesResponse struct {
	Categories []*linklist.Category `json:"categories"`
}

type warningResponse struct {
	Warning string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := linklist.LinkFilter{Query: query.Get("q")}

	order, err := linklist.ParseSortOrder(query.Get("sort"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filter.SortBy = order

	if query.Has("category") {
		category := query.Get("category")
		filter.Category = &category
	}

	links, err := s.links.FindLinks(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linksResponse{Links: links})
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, linklist.Errorf(linklist.EINVALID, "invalid request body"))
		return
	}

	link := &linklist.Link{
		Title:    req.Title,
		URL:      req.URL,
		Tags:     req.Tags,
		Category: req.Category,
		Favicon:  req.Favicon,
	}
	warning, err := storageWarning(s.links.CreateLink(r.Context(), link))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, linkResponse{Link: link, Warning: warning})
}

func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	link, err := s.links.FindLinkByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkResponse{Link: link})
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var upd linklist.LinkUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.writeError(w, r, linklist.Errorf(linklist.EINVALID, "invalid request body"))
		return
	}

	link, err := s.links.UpdateLink(r.Context(), id, upd)
	warning, err := storageWarning(err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkResponse{Link: link, Warning: warning})
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	warning, err := storageWarning(s.links.DeleteLink(r.Context(), id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if warning != "" {
		writeJSON(w, http.StatusOK, warningResponse{Warning: warning})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.links.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxImportSize))
	if err != nil {
		s.writeError(w, r, linklist.Errorf(linklist.EINVALID, "could not read request body: %s", err))
		return
	}

	links, err := s.links.ImportLinks(r.Context(), data)
	warning, err := storageWarning(err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linksResponse{Links: links, Warning: warning})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.links.ExportLinks(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="linklist.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// storageWarning turns an EUNAVAILABLE error into a warning message. The
// mutation it reports has already been applied in memory.
func storageWarning(err error) (string, error) {
	if linklist.ErrorCode(err) == linklist.EUNAVAILABLE {
		return linklist.ErrorMessage(err), nil
	}
	return "", err
}

func linkID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, linklist.Errorf(linklist.EINVALID, "invalid link id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	switch code {
	case linklist.EINVALID, linklist.EUNSUPPORTED:
		return http.StatusBadRequest
	case linklist.ENOTFOUND:
		return http.StatusNotFound
	case linklist.EFORMAT:
		return http.StatusUnprocessableEntity
	case linklist.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := linklist.ErrorCode(err)
	if code == linklist.EINTERNAL {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, ErrorStatusCode(code), errorResponse{Error: linklist.ErrorMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
