package moderation

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes the admin endpoints for reading and updating the policy.
type Handler struct {
	svc      *Service
	logger   *zap.SugaredLogger
	validate *validator.Validate
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger, validate: validator.New()}
}

// SettingsResponse is the public shape of the policy; the row id stays internal.
type SettingsResponse struct {
	AutoApproveEnabled          bool `json:"auto_approve_enabled"`
	ManualReviewRatingThreshold int  `json:"manual_review_rating_threshold"`
}

// UpdateSettingsRequest carries both policy fields; partial updates are not supported.
type UpdateSettingsRequest struct {
	AutoApproveEnabled          *bool `json:"auto_approve_enabled" validate:"required"`
	ManualReviewRatingThreshold *int  `json:"manual_review_rating_threshold" validate:"required,min=1,max=10"`
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GetOrCreate(r.Context())
	if err != nil {
		h.logger.Errorw("load moderation settings failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, SettingsResponse{
		AutoApproveEnabled:          st.AutoApproveEnabled,
		ManualReviewRatingThreshold: st.ManualReviewRatingThreshold,
	})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Debugw("invalid moderation settings payload", "err", err)
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	st, err := h.svc.Update(r.Context(), *req.AutoApproveEnabled, *req.ManualReviewRatingThreshold)
	if err != nil {
		h.logger.Errorw("update moderation settings failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, SettingsResponse{
		AutoApproveEnabled:          st.AutoApproveEnabled,
		ManualReviewRatingThreshold: st.ManualReviewRatingThreshold,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
