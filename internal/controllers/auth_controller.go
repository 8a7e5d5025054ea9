// internal/controllers/auth_controller.go
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/dtos"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

type AuthController struct {
	authService services.AuthService
	validate    *validator.Validate
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
		validate:    validator.New(),
	}
}

// POST /api/v1/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	ctx := utils.WithUserAgent(r.Context(), r.UserAgent())
	member, access, refresh, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.LoginResponse{
		Staff:        *member,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// POST /api/v1/auth/refresh
func (c *AuthController) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	access, refresh, err := c.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.RefreshResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// POST /api/v1/auth/logout
//
// Runs behind the auth middleware so the logout audit entry can name the
// actor. Always answers 204: client state is cleared regardless of how the
// revocation went.
func (c *AuthController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := getStaffID(r)
	if err != nil {
		actorID = uuid.Nil
	}

	var req dtos.LogoutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	_ = c.authService.Logout(r.Context(), actorID, req.RefreshToken)
	w.WriteHeader(http.StatusNoContent)
}
