package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// TokenIssuer mints a bearer token for an authenticated admin.
type TokenIssuer interface {
	Issue(subject int64) (string, error)
}

// Handler exposes HTTP endpoints for admin login, bootstrap and lifecycle.
type Handler struct {
	svc      *Service
	tokens   TokenIssuer
	logger   *zap.SugaredLogger
	validate *validator.Validate
}

func NewHandler(svc *Service, tokens TokenIssuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger, validate: validator.New()}
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates form-encoded username/password and returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	u, err := h.svc.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.logger.Debugw("login rejected", "email", email)
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		h.logger.Errorw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// BootstrapRequest is the one-time first-admin payload.
type BootstrapRequest struct {
	Secret   string `json:"secret" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	u, err := h.svc.Bootstrap(r.Context(), req.Secret, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrBootstrapSecret):
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid bootstrap secret"})
		case errors.Is(err, ErrBootstrapUsed):
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "bootstrap already used"})
		case errors.Is(err, ErrEmailTaken):
			h.writeJSON(w, http.StatusConflict, map[string]string{"error": "user already exists"})
		default:
			h.logger.Errorw("bootstrap failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		}
		return
	}
	h.logger.Infow("bootstrap admin created", "id", u.ID)
	h.writeJSON(w, http.StatusCreated, u.Out())
}

// CreateRequest is the admin-gated account creation payload.
type CreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	u, err := h.svc.Create(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			h.writeJSON(w, http.StatusConflict, map[string]string{"error": "user already exists"})
			return
		}
		h.logger.Errorw("create admin failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	h.writeJSON(w, http.StatusCreated, u.Out())
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		h.logger.Errorw("delete admin failed", "id", id, "err", err)
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
