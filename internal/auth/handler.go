package auth

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/httputil"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service      *Service
	logger       *logging.Logger
	secureCookie bool
}

func NewHandler(service *Service, logger *logging.Logger, isProduction bool) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		secureCookie: isProduction,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	UserName     string `json:"userName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// LoginRequest represents the login request body. Identifier is an email address or user name.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UpdatePasswordRequest represents the password change request body
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	User    *user.User `json:"user"`
	Message string     `json:"message"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new account. No session is issued; log in afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration form"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing field, invalid email or weak password"
// @Failure      409 {object} httputil.ErrorResponse "Email address or user name already in use"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"user_name": req.UserName})

	newUser, err := h.service.Register(r.Context(), RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserName:     req.UserName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrMissingField):
			logger.Warn("registration failed: validation error", "error", err.Error())
			httputil.RespondFieldError(w, err.Error(), httputil.CodeMissingField, apperror.FieldOf(err), http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("registration failed: validation error", "error", err.Error())
			httputil.RespondFieldError(w, err.Error(), httputil.CodeInvalidEmailFormat, "emailAddress", http.StatusBadRequest)
		case errors.Is(err, ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			httputil.RespondFieldError(w, err.Error(), httputil.CodeEmailAlreadyExists, "emailAddress", http.StatusConflict)
		case errors.Is(err, ErrDuplicateUserName):
			logger.Warn("registration failed: user name already exists")
			httputil.RespondFieldError(w, err.Error(), httputil.CodeUserNameAlreadyExists, "userName", http.StatusConflict)
		case errors.Is(err, user.ErrDuplicateIdentity):
			logger.Warn("registration failed: unique constraint violated", "error", err.Error())
			httputil.RespondErrorWithCode(w, user.ErrDuplicateIdentity.Error(), httputil.CodeDuplicateIdentity, http.StatusConflict)
		case errors.Is(err, ErrWeakPassword):
			logger.Warn("registration failed: weak password")
			httputil.RespondFieldError(w, ErrWeakPassword.Error(), httputil.CodeWeakPassword, "password", http.StatusBadRequest)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to register user", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	httputil.RespondJSON(w, RegisterResponse{
		User:    newUser,
		Message: "Registration successful. Please log in.",
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate by email address or user name. The session token is set as the authToken cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} TokenClaims
// @Failure      400 {object} httputil.ErrorResponse "Wrong login credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	token, claims, err := h.service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, ErrInvalidCredentials.Error(), httputil.CodeInvalidCredentials, http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	SetSessionCookie(w, token, claims.ExpiresAt, h.secureCookie)

	logger.Info("user logged in successfully", "user_id", claims.ID)

	httputil.RespondJSON(w, claims, http.StatusOK)
}

// Logout handles user logout
// @Summary      User logout
// @Description  Clear the session cookie. The token is revoked server-side only when revocation is enabled.
// @Tags         auth
// @Produce      json
// @Success      200 {object} MessageResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	claims, _ := ClaimsFromContext(r.Context())
	if err := h.service.Logout(r.Context(), claims); err != nil {
		// Continue - still clear the cookie
		logger.Warn("failed to revoke session token", "error", err.Error())
	}

	ClearSessionCookie(w, h.secureCookie)

	logger.Info("user logged out successfully")

	httputil.RespondJSON(w, MessageResponse{Message: "logged out"}, http.StatusOK)
}

// UpdatePassword handles password changes for the logged-in user
// @Summary      Change password
// @Description  Replace the password after confirming the current one. Existing sessions stay valid.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdatePasswordRequest true "Current and new password"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing field, wrong current password or weak new password"
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /auth/password [patch]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdatePasswordRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid password update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	err := h.service.UpdatePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrMissingField):
			httputil.RespondFieldError(w, err.Error(), httputil.CodeMissingField, apperror.FieldOf(err), http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("password update failed: current password mismatch")
			httputil.RespondFieldError(w, ErrInvalidCredentials.Error(), httputil.CodeInvalidCredentials, "currentPassword", http.StatusBadRequest)
		case errors.Is(err, ErrWeakPassword):
			httputil.RespondFieldError(w, ErrWeakPassword.Error(), httputil.CodeWeakPassword, "newPassword", http.StatusBadRequest)
		case errors.Is(err, user.ErrNotFound):
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
		default:
			logger.Error("password update failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to update password", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("password updated", "user_id", identity.ID)

	httputil.RespondJSON(w, MessageResponse{Message: "password updated"}, http.StatusOK)
}
