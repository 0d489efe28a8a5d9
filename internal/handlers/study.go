package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/services"
)

type StudyHandler struct {
	svc *services.StudyService
}

func NewStudyHandler(svc *services.StudyService) *StudyHandler {
	return &StudyHandler{svc: svc}
}

func sessionResp(s *models.StudySession) map[string]interface{} {
	return map[string]interface{}{
		"session_id":  s.ID,
		"total_cards": s.TotalCards(),
		"position":    s.Progress().CurrentCard,
		"is_complete": s.IsComplete(),
		"progress":    s.Progress(),
	}
}

func (h *StudyHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Start(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResp(session))
}

func (h *StudyHandler) Current(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Current(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *StudyHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Reveal(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *StudyHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req models.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.svc.Respond(r.Context(), id, req.IsCorrect, req.ResponseTimeSeconds)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResp(session))
}

func (h *StudyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Progress(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResp(session))
}

func (h *StudyHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResp(session))
}

func (h *StudyHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sessions, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch recent sessions", r))
		return
	}
	if sessions == nil {
		sessions = []*models.SessionArchive{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return uuid.Nil, false
	}
	return id, true
}
