package handler

import (
	"encoding/json"
	"net/http"

	"filedrop/internal/common"
	"filedrop/internal/platform/config"
)

// AuthHandler implements the admin gate: a static shared-secret compare,
// not a real authentication scheme.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type authRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Password != config.AppConfig.AdminPassword {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
