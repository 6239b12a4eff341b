package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/agent-ops/sandboxctl/internal/errors"
	"github.com/agent-ops/sandboxctl/internal/logging"
	"github.com/agent-ops/sandboxctl/internal/session"
)

// Server exposes the session lifecycle over HTTP.
type Server struct {
	orchestrator *session.Orchestrator
	mux          *http.ServeMux
}

// NewServer builds the HTTP surface around an orchestrator.
func NewServer(o *session.Orchestrator) *Server {
	s := &Server{
		orchestrator: o,
		mux:          http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /v1/sessions/create", s.handleCreate)
	s.mux.HandleFunc("POST /v1/sessions/terminate", s.handleTerminate)
	s.mux.HandleFunc("POST /v1/sessions/hibernate", s.handleHibernate)
	s.mux.HandleFunc("POST /v1/sessions/restore", s.handleRestore)
	s.mux.HandleFunc("POST /v1/sessions/status", s.handleStatus)
	s.mux.HandleFunc("POST /v1/volumes/delete", s.handleVolumeDelete)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}

// withRequestLog tags each request with an ID and logs it.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		logging.Debug("request", "id", reqID, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// sandboxIDRequest is the body shape for terminate/hibernate/status.
type sandboxIDRequest struct {
	SandboxID string `json:"sandboxId"`
}

// sessionIDRequest is the body shape for volume deletion.
type sessionIDRequest struct {
	SessionID string `json:"sessionId"`
}

// restoreRequest extends the create body with the snapshot image ID.
type restoreRequest struct {
	session.CreateRequest
	SnapshotImageID string `json:"snapshotImageId"`
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req session.CreateRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.orchestrator.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTerminate(w http.ResponseWriter, r *http.Request) {
	var req sandboxIDRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.orchestrator.Terminate(r.Context(), req.SandboxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHibernate(w http.ResponseWriter, r *http.Request) {
	var req sandboxIDRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.orchestrator.Hibernate(r.Context(), req.SandboxID)
	if err != nil {
		// The already-finished conflict renders as 409 via the error's
		// HTTPStatus; nothing special to do here.
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.orchestrator.Restore(r.Context(), &req.CreateRequest, req.SnapshotImageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req sandboxIDRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.orchestrator.Status(r.Context(), req.SandboxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVolumeDelete(w http.ResponseWriter, r *http.Request) {
	var req sessionIDRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.orchestrator.DeleteVolume(r.Context(), req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode parses the JSON body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   apperrors.CodeInvalidRequest,
			Message: "malformed JSON body",
		})
		return false
	}
	return true
}

// writeError renders an error through the taxonomy: coded errors carry
// their own HTTP status and stable API code, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var se *apperrors.SandboxError
	if apperrors.As(err, &se) {
		code := se.APICode
		if code == "" {
			code = apperrors.CodeBackendError
		}
		writeJSON(w, se.HTTPStatus(), errorBody{Error: code, Message: se.Error()})
		return
	}

	logging.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   apperrors.CodeBackendError,
		Message: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}
