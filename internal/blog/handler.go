package blog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/httputil"
	"github.com/redmonkez12/go-blog-api/internal/logging"
)

// Handler contains HTTP handlers for blog endpoints. Every route sits behind the request gate.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBlogRequest represents the create blog request body
type CreateBlogRequest struct {
	Title            string  `json:"title"`
	Synopsis         string  `json:"synopsis"`
	Content          string  `json:"content"`
	FeaturedImageURL *string `json:"featuredImageUrl"`
}

// UpdateBlogRequest represents a partial blog update; omitted fields keep their value
type UpdateBlogRequest struct {
	Title            *string `json:"title"`
	Synopsis         *string `json:"synopsis"`
	Content          *string `json:"content"`
	FeaturedImageURL *string `json:"featuredImageUrl"`
}

// BlogResponse wraps a single blog
type BlogResponse struct {
	Blog *Blog `json:"blog"`
}

// BlogsResponse wraps a blog listing
type BlogsResponse struct {
	Blogs   []Blog `json:"blogs"`
	Message string `json:"message,omitempty"`
}

// Create handles blog creation
// @Summary      Create a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        request body CreateBlogRequest true "New blog"
// @Success      201 {object} BlogResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing field or invalid image URL"
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Router       /blogs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req CreateBlogRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid create blog request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	b, err := h.service.Create(r.Context(), identity.ID, CreateInput{
		Title:            req.Title,
		Synopsis:         req.Synopsis,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
	})
	if err != nil {
		respondServiceError(w, logger, err, "failed to create blog")
		return
	}

	logger.Info("blog created", "blog_id", b.ID)
	httputil.RespondJSON(w, BlogResponse{Blog: b}, http.StatusCreated)
}

// List handles listing the caller's active blogs
// @Summary      List blogs
// @Tags         blogs
// @Produce      json
// @Success      200 {object} BlogsResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Router       /blogs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	blogs, err := h.service.List(r.Context(), identity.ID)
	if err != nil {
		respondServiceError(w, logger, err, "failed to list blogs")
		return
	}

	httputil.RespondJSON(w, BlogsResponse{Blogs: blogs}, http.StatusOK)
}

// ListTrash handles listing the caller's trashed blogs. Also mounted at /profile/trash.
// @Summary      List trashed blogs
// @Tags         blogs
// @Produce      json
// @Success      200 {object} BlogsResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Router       /blogs/trash [get]
func (h *Handler) ListTrash(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	blogs, err := h.service.ListTrash(r.Context(), identity.ID)
	if err != nil {
		respondServiceError(w, logger, err, "failed to list trash")
		return
	}

	resp := BlogsResponse{Blogs: blogs}
	if len(blogs) == 0 {
		resp.Message = "trash is empty"
	}
	httputil.RespondJSON(w, resp, http.StatusOK)
}

// Get handles fetching one active blog
// @Summary      Get a blog
// @Tags         blogs
// @Produce      json
// @Param        id path string true "Blog ID"
// @Success      200 {object} BlogResponse
// @Failure      404 {object} httputil.ErrorResponse "Blog not found"
// @Router       /blogs/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), identity.ID, id)
	if err != nil {
		respondServiceError(w, logger, err, "failed to get blog")
		return
	}

	httputil.RespondJSON(w, BlogResponse{Blog: b}, http.StatusOK)
}

// Update handles partial blog updates
// @Summary      Update a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id path string true "Blog ID"
// @Param        request body UpdateBlogRequest true "Fields to change"
// @Success      200 {object} BlogResponse
// @Failure      400 {object} httputil.ErrorResponse "Blank field or invalid image URL"
// @Failure      404 {object} httputil.ErrorResponse "Blog not found"
// @Router       /blogs/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req UpdateBlogRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid update blog request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	b, err := h.service.Update(r.Context(), identity.ID, id, UpdateInput{
		Title:            req.Title,
		Synopsis:         req.Synopsis,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
	})
	if err != nil {
		respondServiceError(w, logger, err, "failed to update blog")
		return
	}

	httputil.RespondJSON(w, BlogResponse{Blog: b}, http.StatusOK)
}

// Trash handles moving a blog to the trash
// @Summary      Trash a blog
// @Tags         blogs
// @Produce      json
// @Param        id path string true "Blog ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "Blog not found"
// @Router       /blogs/trash/{id} [patch]
func (h *Handler) Trash(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.service.Trash(r.Context(), identity.ID, id); err != nil {
		respondServiceError(w, logger, err, "failed to trash blog")
		return
	}

	httputil.RespondJSON(w, map[string]string{"message": "blog moved to trash"}, http.StatusOK)
}

// Recover handles restoring a blog from the trash
// @Summary      Recover a blog
// @Tags         blogs
// @Produce      json
// @Param        id path string true "Blog ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "Blog not found"
// @Router       /blogs/recover/{id} [patch]
func (h *Handler) Recover(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.service.Recover(r.Context(), identity.ID, id); err != nil {
		respondServiceError(w, logger, err, "failed to recover blog")
		return
	}

	httputil.RespondJSON(w, map[string]string{"message": "blog recovered"}, http.StatusOK)
}

// Delete handles permanent deletion
// @Summary      Permanently delete a blog
// @Tags         blogs
// @Produce      json
// @Param        id path string true "Blog ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "Blog not found"
// @Router       /blogs/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.service.PermanentDelete(r.Context(), identity.ID, id); err != nil {
		respondServiceError(w, logger, err, "failed to delete blog")
		return
	}

	httputil.RespondJSON(w, map[string]string{"message": "blog permanently deleted"}, http.StatusOK)
}

// target resolves the acting identity and the {id} path parameter.
// A malformed id cannot name any blog, so it is answered as not found.
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (auth.Identity, uuid.UUID, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return auth.Identity{}, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondNotFound(w)
		return auth.Identity{}, uuid.Nil, false
	}

	return identity, id, true
}

func respondServiceError(w http.ResponseWriter, logger *logging.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperror.ErrMissingField):
		logger.Warn("blog validation failed", "error", err.Error())
		httputil.RespondFieldError(w, err.Error(), httputil.CodeMissingField, apperror.FieldOf(err), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidImageURL):
		logger.Warn("blog validation failed", "error", err.Error())
		httputil.RespondFieldError(w, ErrInvalidImageURL.Error(), httputil.CodeInvalidImageURL, "featuredImageUrl", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		respondNotFound(w)
	default:
		logger.Error(internalMsg, "error", err.Error())
		httputil.RespondErrorWithCode(w, internalMsg, httputil.CodeInternalError, http.StatusInternalServerError)
	}
}

func respondNotFound(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "blog not found", httputil.CodeNotFound, http.StatusNotFound)
}

func respondUnauthenticated(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
}
