package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MinesMe/ainotea/internal/auth"
	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/storage"
)

// AuthHandler registers devices and issues bearer tokens.
type AuthHandler struct {
	users  storage.UserStore
	issuer *auth.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users storage.UserStore, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		issuer: issuer,
	}
}

// RegisterRequest is the request body for device registration.
type RegisterRequest struct {
	DeviceID string `json:"device_id"`
}

// RegisterResponse carries the issued token.
type RegisterResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /api/auth/register. Registration is idempotent:
// a device that registers again gets a fresh token for its existing user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.DeviceID = strings.TrimSpace(req.DeviceID)
	if req.DeviceID == "" {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}

	user, err := h.users.GetOrCreateByDeviceID(ctx, req.DeviceID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to register device", "error", err)
		writeServiceError(w, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to issue token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, RegisterResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
