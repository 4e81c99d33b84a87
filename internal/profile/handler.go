package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/blog"
	"github.com/redmonkez12/go-blog-api/internal/httputil"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

// Handler contains HTTP handlers for the acting user's profile
type Handler struct {
	service      *Service
	secureCookie bool
}

func NewHandler(service *Service, isProduction bool) *Handler {
	return &Handler{service: service, secureCookie: isProduction}
}

// UpdateProfileRequest represents a partial profile update; omitted fields keep their value
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	UserName     *string `json:"userName"`
	EmailAddress *string `json:"emailAddress"`
}

// ProfileResponse wraps the public profile
type ProfileResponse struct {
	Profile *user.User `json:"profile"`
}

// Get handles reading the caller's profile
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /profile [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	u, err := h.service.Get(r.Context(), identity.ID)
	if err != nil {
		respondServiceError(w, logger, err, "failed to get profile")
		return
	}

	httputil.RespondJSON(w, ProfileResponse{Profile: u}, http.StatusOK)
}

// Update handles partial profile updates
// @Summary      Update profile
// @Description  Change any of firstName, lastName, userName, emailAddress. The session token keeps the old values until the next login.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Fields to change"
// @Success      200 {object} ProfileResponse
// @Failure      400 {object} httputil.ErrorResponse "Blank field or invalid email"
// @Failure      409 {object} httputil.ErrorResponse "User name or email address already in use"
// @Router       /profile [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req UpdateProfileRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	u, err := h.service.Update(r.Context(), identity.ID, user.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserName:     req.UserName,
		EmailAddress: req.EmailAddress,
	})
	if err != nil {
		respondServiceError(w, logger, err, "failed to update profile")
		return
	}

	logger.Info("profile updated", "user_id", identity.ID)
	httputil.RespondJSON(w, ProfileResponse{Profile: u}, http.StatusOK)
}

// Blogs handles listing the caller's active blogs from the profile page
// @Summary      List profile blogs
// @Tags         profile
// @Produce      json
// @Success      200 {object} blog.BlogsResponse
// @Failure      404 {object} httputil.ErrorResponse "No blogs yet"
// @Router       /profile/blogs [get]
func (h *Handler) Blogs(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	blogs, err := h.service.Blogs(r.Context(), identity.ID)
	if err != nil {
		respondServiceError(w, logger, err, "failed to list blogs")
		return
	}
	if len(blogs) == 0 {
		httputil.RespondErrorWithCode(w, "no blogs found", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	httputil.RespondJSON(w, blog.BlogsResponse{Blogs: blogs}, http.StatusOK)
}

// SoftDelete handles closing the caller's account
// @Summary      Delete account
// @Description  Flag the account as deleted and clear the session cookie. Blogs are kept.
// @Tags         profile
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/delete [patch]
func (h *Handler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	if err := h.service.SoftDelete(r.Context(), identity.ID); err != nil {
		respondServiceError(w, logger, err, "failed to delete account")
		return
	}

	auth.ClearSessionCookie(w, h.secureCookie)
	httputil.RespondJSON(w, map[string]string{"message": "account deleted"}, http.StatusOK)
}

// PermanentDelete handles erasing the caller's account
// @Summary      Permanently delete account
// @Description  Erase the account and all of its blogs. Only the caller's own id is accepted.
// @Tags         profile
// @Produce      json
// @Param        id path string true "User ID (must be the caller)"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/delete/{id} [delete]
func (h *Handler) PermanentDelete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondNotFound(w)
		return
	}

	if err := h.service.PermanentDelete(r.Context(), identity.ID, targetID); err != nil {
		if errors.Is(err, user.ErrNotFound) && targetID != identity.ID {
			logger.Warn("refused to delete another user", "target_id", targetID)
		}
		respondServiceError(w, logger, err, "failed to delete account")
		return
	}

	auth.ClearSessionCookie(w, h.secureCookie)
	httputil.RespondJSON(w, map[string]string{"message": "account permanently deleted"}, http.StatusOK)
}

func respondServiceError(w http.ResponseWriter, logger *logging.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperror.ErrMissingField):
		logger.Warn("profile validation failed", "error", err.Error())
		httputil.RespondFieldError(w, err.Error(), httputil.CodeMissingField, apperror.FieldOf(err), http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidEmailFormat):
		httputil.RespondFieldError(w, err.Error(), httputil.CodeInvalidEmailFormat, "emailAddress", http.StatusBadRequest)
	case errors.Is(err, user.ErrDuplicateIdentity):
		logger.Warn("profile update rejected: unique constraint violated", "error", err.Error())
		httputil.RespondErrorWithCode(w, user.ErrDuplicateIdentity.Error(), httputil.CodeDuplicateIdentity, http.StatusConflict)
	case errors.Is(err, user.ErrNotFound):
		respondNotFound(w)
	default:
		logger.Error(internalMsg, "error", err.Error())
		httputil.RespondErrorWithCode(w, internalMsg, httputil.CodeInternalError, http.StatusInternalServerError)
	}
}

func respondNotFound(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
}

func respondUnauthenticated(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
}
