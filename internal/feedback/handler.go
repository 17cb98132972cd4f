package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes HTTP endpoints for feedback submission and moderation.
type Handler struct {
	svc      *Service
	logger   *zap.SugaredLogger
	validate *validator.Validate
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger, validate: validator.New()}
}

// CreateRequest is the public submission payload.
type CreateRequest struct {
	Type    string  `json:"type" validate:"required,oneof=review suggestion"`
	Rating  int     `json:"rating" validate:"required,min=1,max=10"`
	Text    string  `json:"text" validate:"required,min=1"`
	Name    string  `json:"name" validate:"required,min=1,max=60"`
	Contact string  `json:"contact" validate:"required,min=1,max=50"`
	Source  *string `json:"source" validate:"omitempty,max=150"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Debugw("invalid feedback payload", "err", err)
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	f, err := h.svc.Create(r.Context(), CreateInput{
		Type:    req.Type,
		Rating:  req.Rating,
		Text:    req.Text,
		Name:    req.Name,
		Contact: req.Contact,
		Source:  req.Source,
	})
	if err != nil {
		h.logger.Errorw("create feedback failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusCreated, f)
}

// ListPublic returns approved feedback only, newest-first.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), true)
	if err != nil {
		h.logger.Errorw("list feedback failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// ListAdmin returns every record regardless of approval state.
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), false)
	if err != nil {
		h.logger.Errorw("list feedback failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("f_id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback not found"})
		return
	}
	f, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback not found"})
			return
		}
		h.logger.Errorw("approve feedback failed", "id", id, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, f)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("f_id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback not found"})
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback not found"})
			return
		}
		h.logger.Errorw("delete feedback failed", "id", id, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
