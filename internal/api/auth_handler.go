package api

import (
	"net/http"

	"github.com/nolanpk/taskwell-api/internal/api/middleware"
	"github.com/nolanpk/taskwell-api/internal/api/shared"
	"github.com/nolanpk/taskwell-api/internal/domain"
	"github.com/nolanpk/taskwell-api/internal/platform/logger"
	"github.com/nolanpk/taskwell-api/internal/service"
	"github.com/nolanpk/taskwell-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService  service.UserService
	tokenService auth.TokenService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService, tokenService auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Register handles POST /api/v1/auth/register.
// Responds 201 with the created user (no password hash) or 422 with
// per-field validation errors.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := shared.ValidateRequest(req); errs != nil {
		shared.RespondWithValidationErrors(w, r, errs)
		return
	}

	user, err := h.userService.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login.
// Unknown email and wrong password produce identical 401 responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := shared.ValidateRequest(req); errs != nil {
		shared.RespondWithValidationErrors(w, r, errs)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	issued, err := h.tokenService.Issue(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Type:        domain.TokenTypeBearer,
		AccessToken: issued.SignedString,
	})
}

// Logout handles POST /api/v1/auth/logout.
// Revokes exactly the token the request authenticated with; the user's
// other sessions stay valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	tokenID, ok := middleware.GetTokenID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Token not found")
		return
	}

	if err := h.tokenService.Revoke(r.Context(), tokenID); err != nil {
		log.Error("failed to revoke token", "error", err, "token_id", tokenID)
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out"})
}
