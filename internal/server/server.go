// Package server serves the web CAGR calculator and its JSON endpoint.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/fundcagr/internal/logging"
	"github.com/theirongolddev/fundcagr/internal/model"
	"github.com/theirongolddev/fundcagr/internal/pipeline"
)

// DefaultAddr matches the address the calculator has always listened on.
const DefaultAddr = "127.0.0.1:5000"

//go:embed page.html
var page []byte

// Config controls the server runtime behavior.
type Config struct {
	Addr string
	// Now supplies the reference date for every report. Defaults to time.Now.
	Now    func() time.Time
	Logger *logrus.Logger
}

// Service provides the HTTP API and calculator page.
type Service struct {
	cfg     Config
	fetcher pipeline.Fetcher
	log     *logrus.Logger
}

// New returns a service that loads schemes through f.
func New(cfg Config, f pipeline.Fetcher) *Service {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &Service{
		cfg:     cfg,
		fetcher: f,
		log:     log,
	}
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /calculate-cagr/{code}", s.handleCAGR)

	return s.withRequestLog(withCORS(mux))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.WithField("addr", s.cfg.Addr).Info("calculator listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}
}

func (s *Service) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleCAGR(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	report, stats, err := pipeline.Load(r.Context(), s.fetcher, code, s.cfg.Now())
	if err != nil {
		status := StatusFor(err)
		entry := s.log.WithFields(logrus.Fields{
			"request_id": requestID(r),
			"scheme":     code,
			"status":     status,
		}).WithError(err)
		if status >= http.StatusInternalServerError {
			entry.Error("cagr request failed")
		} else {
			entry.Warn("cagr request rejected")
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID(r),
		"scheme":       code,
		"observations": stats.Observations,
		"dropped":      stats.Dropped,
		"undefined":    len(report.Undefined()),
	}).Debug("report built")

	writeJSON(w, http.StatusOK, report)
}

type errorBody struct {
	Error string `json:"error"`
}

// StatusFor maps an error onto the HTTP status the calculator answers with.
func StatusFor(err error) int {
	switch model.Classify(err) {
	case model.KindNone:
		return http.StatusOK
	case model.KindInvalidInput:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindNetwork, model.KindUpstream, model.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withRequestLog assigns a request ID, echoing a caller-supplied one, and
// logs every request once it completes.
func (s *Service) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		h.Set("Access-Control-Expose-Headers", requestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
