package handler

import (
	"net/http"
	"strconv"

	"github.com/prosn/api/internal/middleware"
	"github.com/prosn/api/internal/model"
	"github.com/prosn/api/internal/service"
)

// PostHandler handles post HTTP requests
type PostHandler struct {
	svc *service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// WriteProblem handles POST /v1/posts/problems
func (h *PostHandler) WriteProblem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.WriteProblemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	post, err := h.svc.WriteProblem(ctx, userID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, post)
}

// WriteInformation handles POST /v1/posts/informations
func (h *PostHandler) WriteInformation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.WriteInformationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	post, err := h.svc.WriteInformation(ctx, userID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, post)
}

// GetByID handles GET /v1/posts/{postId}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := r.PathValue("postId")

	detail, err := h.svc.GetPostDetail(ctx, postID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, detail)
}

// Delete handles DELETE /v1/posts/{postId}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	postID := r.PathValue("postId")

	if err := h.svc.Delete(ctx, postID, userID); err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

// List handles GET /v1/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListPosts(r.Context(), parsePageRequest(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, page)
}

// ListProblems handles GET /v1/posts/problems
func (h *PostHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListProblems(r.Context(), parsePageRequest(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, page)
}

// ListInformation handles GET /v1/posts/informations
func (h *PostHandler) ListInformation(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListInformation(r.Context(), parsePageRequest(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, page)
}

// LikeDislike handles POST /v1/posts/reaction
func (h *PostHandler) LikeDislike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.LikeDislikeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.svc.LikeDislike(ctx, userID, &req); err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

// Search handles GET /v1/posts/search
func (h *PostHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := model.SearchPostRequest{
		Title: r.URL.Query().Get("title"),
		Code:  r.URL.Query().Get("code"),
	}

	results, err := h.svc.Search(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, results)
}

func (h *PostHandler) handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}

// parsePageRequest reads page/size query parameters, leaving zero values
// for the service layer to normalize.
func parsePageRequest(r *http.Request) model.PageRequest {
	var page model.PageRequest
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		page.Size = v
	}
	return page
}
