// Package web serves the query form and a small JSON API over a single
// shared query controller.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/doeshing/painpoint-go/internal/application/query"
	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/ports"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxBodyBytes      = 64 << 10
)

// Server exposes a QueryController over HTTP.
type Server struct {
	controller ports.QueryController
	metrics    http.Handler
	logger     ports.Logger
	page       *template.Template
}

// QueryPayload is the body accepted by POST /api/query.
type QueryPayload struct {
	CompanyName string `json:"company_name"`
	CompanyURL  string `json:"company_url"`
}

// NewServer builds a Server. metrics may be nil, in which case /metrics is not mounted.
func NewServer(controller ports.QueryController, metrics http.Handler, logger ports.Logger) *Server {
	return &Server{
		controller: controller,
		metrics:    metrics,
		logger:     logger,
		page:       template.Must(template.New("index").Parse(indexTemplate)),
	}
}

// Router returns the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Post("/", s.submitForm)
	r.Route("/api", func(r chi.Router) {
		r.Post("/query", s.submitQuery)
		r.Get("/state", s.currentState)
	})
	r.Get("/healthz", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	s.logger.Info("web server listening", map[string]interface{}{"addr": addr})
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("web server shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{State: s.controller.State().View()})
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	payload := QueryPayload{
		CompanyName: r.PostForm.Get("company_name"),
		CompanyURL:  r.PostForm.Get("company_url"),
	}
	state, err := s.controller.Submit(context.WithoutCancel(r.Context()), payload.CompanyName, payload.CompanyURL)
	s.renderPage(w, statusFor(err), pageData{
		State:       state.View(),
		CompanyName: payload.CompanyName,
		CompanyURL:  payload.CompanyURL,
		Busy:        errors.Is(err, query.ErrInFlight),
	})
}

func (s *Server) submitQuery(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		writeJSONStatus(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	// The submission outlives a disconnected client; its result stays visible via /api/state.
	state, err := s.controller.Submit(context.WithoutCancel(r.Context()), payload.CompanyName, payload.CompanyURL)
	writeJSONStatus(w, state.View(), statusFor(err))
}

func (s *Server) currentState(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, s.controller.State().View(), http.StatusOK)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func decodePayload(w http.ResponseWriter, r *http.Request) (QueryPayload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return QueryPayload{}, fmt.Errorf("invalid form: %w", err)
		}
		return QueryPayload{
			CompanyName: r.PostForm.Get("company_name"),
			CompanyURL:  r.PostForm.Get("company_url"),
		}, nil
	}

	var payload QueryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return QueryPayload{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	return payload, nil
}

// statusFor maps a Submit error to an HTTP status.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, query.ErrInFlight) {
		return http.StatusConflict
	}
	var qerr *domain.QueryError
	if errors.As(err, &qerr) && qerr.Kind == domain.ErrorKindValidation {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page", err, nil)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request", map[string]interface{}{
			"request_id":  middleware.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func writeJSONStatus(w http.ResponseWriter, value any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(value)
}
