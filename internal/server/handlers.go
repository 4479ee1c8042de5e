package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/diagramlayout/pkg/buildinfo"
	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/errors"
	"github.com/matzehuels/diagramlayout/pkg/layout"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	theme := r.URL.Query().Get("theme")
	cfg, err := layout.Preset(theme)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "unknown theme %q", theme))
		return
	}

	var doc diagram.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:    errors.ErrCodeInvalidInput,
				Message: "request body too large",
			})
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram document: %v", err))
		return
	}

	res, err := s.runner.LayoutDocument(r.Context(), doc, cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if res.Hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	s.writeJSON(w, http.StatusOK, res.Document)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := layout.Preset(chi.URLParam(r, "preset"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, errorBody{Code: errors.ErrCodeNotFound, Message: "no route for " + r.URL.Path})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: errors.ErrCodeUnsupported, Message: r.Method + " not allowed on " + r.URL.Path})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFrom(r.Context()))
	} else {
		s.logger.Debug("rejected request", "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	s.writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}
