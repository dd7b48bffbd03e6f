// Package http provides the HTTP bridge an editor integration talks to.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/0xcro3dile/wordlookup-go/internal/adapters/editor"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/usecases"
)

// Server exposes the lookup and story commands over HTTP.
type Server struct {
	lookupUseCase *usecases.LookupUseCase
	storyUseCase  *usecases.StoryUseCase
	history       ports.LookupHistory
	vault         ports.Vault
	storiesFolder string
	validate      *validator.Validate
	markdown      goldmark.Markdown
	logger        *zap.Logger
	addr          string
}

// NewServer creates a new HTTP server.
func NewServer(
	lookupUC *usecases.LookupUseCase,
	storyUC *usecases.StoryUseCase,
	history ports.LookupHistory,
	vault ports.Vault,
	storiesFolder string,
	logger *zap.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		lookupUseCase: lookupUC,
		storyUseCase:  storyUC,
		history:       history,
		vault:         vault,
		storiesFolder: storiesFolder,
		validate:      validator.New(),
		markdown:      goldmark.New(),
		logger:        logger,
		addr:          addr,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/lookup", s.handleLookup)
	mux.HandleFunc("/api/story", s.handleStory)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/stories/", s.handleStoryPage)

	return corsMiddleware(s.loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	s.logger.Info("bridge server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// LookupRequest is the body of POST /api/lookup. Document is the whole
// note; From/To delimit the selection.
type LookupRequest struct {
	Document string            `json:"document" validate:"required"`
	From     entities.Position `json:"from"`
	To       entities.Position `json:"to"`
	Mark     bool              `json:"mark"`
}

// LookupResponse is returned by POST /api/lookup. Document carries the
// note after marking so the editor can apply it.
type LookupResponse struct {
	Document string `json:"document"`
	Query    string `json:"query"`
	Response string `json:"response"`
	Marked   bool   `json:"marked"`
}

// StoryResponse is returned by POST /api/story.
type StoryResponse struct {
	Path    string `json:"path"`
	Words   string `json:"words"`
	Story   string `json:"story"`
	Created bool   `json:"created"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	buf := editor.NewBuffer(req.Document, req.From, req.To)

	var (
		result *entities.LookupResult
		err    error
	)
	if req.Mark {
		result, err = s.lookupUseCase.MarkAndQuery(r.Context(), buf)
	} else {
		result, err = s.lookupUseCase.QueryWithContext(r.Context(), buf)
	}
	if err != nil {
		s.writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LookupResponse{
		Document: buf.Text(),
		Query:    result.Query,
		Response: result.Response,
		Marked:   result.Marked,
	})
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	story, err := s.storyUseCase.Generate(r.Context())
	if err != nil {
		s.writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StoryResponse{
		Path:    story.Path,
		Words:   story.Words,
		Story:   story.Content,
		Created: story.Created,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("reading history failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reading history failed")
		return
	}
	if records == nil {
		records = []entities.LookupRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleStoryPage renders a story note as HTML.
func (s *Server) handleStoryPage(w http.ResponseWriter, r *http.Request) {
	name := path.Base(strings.TrimPrefix(r.URL.Path, "/stories/"))
	if name == "" || name == "." || name == "/" || !strings.HasSuffix(name, ".md") {
		http.NotFound(w, r)
		return
	}

	content, err := s.vault.Read(r.Context(), path.Join(s.storiesFolder, name))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &body); err != nil {
		s.logger.Error("rendering story failed", zap.String("story", name), zap.Error(err))
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html>\n<html><head><meta charset=\"UTF-8\"><title>"))
	w.Write([]byte(html.EscapeString(strings.TrimSuffix(name, ".md"))))
	w.Write([]byte("</title></head><body>\n"))
	w.Write(body.Bytes())
	w.Write([]byte("</body></html>\n"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeUseCaseError maps domain errors onto status codes.
func (s *Server) writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecases.ErrNoVocabulary):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecases.ErrEmptyStory), errors.Is(err, ports.ErrTransport):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
