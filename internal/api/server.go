// Package api exposes the entry workflow over a small JSON API. It is a thin
// consumer: it only reads workflow state and dispatches field-change, search,
// person and clear events.
package api

import (
	"encoding/json"
	"net/http"

	stderrors "addressbook/internal/common/errors"
	"addressbook/internal/common/logger"
	"addressbook/internal/entry"
	"addressbook/internal/form"
)

type Server struct {
	workflow *entry.Workflow
	logger   logger.Logger
}

func NewServer(workflow *entry.Workflow, log logger.Logger) *Server {
	return &Server{
		workflow: workflow,
		logger:   log,
	}
}

// Routes registers all API handlers on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fields", s.handleFieldChange)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/person", s.handlePerson)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

type fieldChangeRequest struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

func (s *Server) handleFieldChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req fieldChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ev := form.ChangeEvent{Value: req.Value, Checked: req.Checked}
	if err := s.workflow.ApplyFieldChange(req.Field, ev); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	addresses, err := s.workflow.SubmitSearch(r.Context())
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"addresses": addresses})
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	saved, err := s.workflow.SubmitPerson(r.Context())
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entry": saved})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	s.workflow.Clear()
	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForCode maps workflow error codes to HTTP statuses.
func statusForCode(code stderrors.ErrorCode) int {
	switch code {
	case stderrors.ErrCodeValidation, stderrors.ErrCodeSelection:
		return http.StatusBadRequest
	case stderrors.ErrCodeNotFound:
		return http.StatusNotFound
	case stderrors.ErrCodeBusy:
		return http.StatusConflict
	case stderrors.ErrCodeTransport, stderrors.ErrCodeFormat, stderrors.ErrCodeMalformedRecord:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeWorkflowError(w http.ResponseWriter, err error) {
	stdErr := stderrors.AsStandard(err)
	writeJSON(w, statusForCode(stdErr.Code), map[string]string{
		"error": stdErr.Message,
		"code":  string(stdErr.Code),
	})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
