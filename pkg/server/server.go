package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/depot/shredder/pkg/assist"
	"github.com/depot/shredder/pkg/convert"
	"github.com/depot/shredder/pkg/pipeline"
	"github.com/depot/shredder/pkg/samples"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes bounds request bodies; workflows are a few hundred lines.
const maxBodyBytes = 1 << 20

// Translator is the optional AI-assisted fallback.
type Translator interface {
	Translate(ctx context.Context, yamlText string, lang pipeline.Language) (string, error)
}

type Server struct {
	assist Translator
	log    logrus.FieldLogger
}

// New creates a server. tr may be nil, in which case /api/assist answers 503.
func New(tr Translator, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{assist: tr, log: log}
}

type convertRequest struct {
	YAML     string `json:"yaml"`
	Language string `json:"language"`
}

type assistResponse struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/convert", s.handleConvert)
	mux.HandleFunc("/api/assist", s.handleAssist)
	mux.HandleFunc("/api/samples/", s.handleSample)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "unable to listen on %s", addr)
	}
	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.log.WithField("addr", listener.Addr().String()).Info("listening")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, lang, ok := s.decode(w, r)
	if !ok {
		return
	}
	res := convert.Convert(req.YAML, lang)
	if res.OK() {
		if err := convert.CheckBaseImage(req.YAML); err != nil {
			s.log.WithError(err).Warn("generated pipeline uses an invalid base image")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	req, lang, ok := s.decode(w, r)
	if !ok {
		return
	}

	if s.assist == nil {
		writeJSON(w, http.StatusServiceUnavailable, assistResponse{Error: assist.ErrNoAPIKey.Error()})
		return
	}

	code, err := s.assist.Translate(r.Context(), req.YAML, lang)
	if err != nil {
		s.log.WithError(err).Warn("assist translation failed")
		status := http.StatusBadGateway
		if errors.Is(err, assist.ErrNoAPIKey) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, assistResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, assistResponse{Code: code})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/samples/")
	content, err := samples.Get(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	_, _ = io.WriteString(w, content)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (convertRequest, pipeline.Language, bool) {
	var req convertRequest
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, "", false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, convert.Result{Error: "invalid request body: " + err.Error()})
		return req, "", false
	}

	lang, err := pipeline.ParseLanguage(req.Language)
	if err != nil {
		s.log.WithField("language", req.Language).Warnf("unknown language, using %s", pipeline.DefaultLanguage)
		lang = pipeline.DefaultLanguage
	}
	return req, lang, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
