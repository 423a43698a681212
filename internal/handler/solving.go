package handler

import (
	"net/http"

	"github.com/prosn/api/internal/middleware"
	"github.com/prosn/api/internal/model"
	"github.com/prosn/api/internal/service"
)

// SolvingHandler handles solve submission HTTP requests
type SolvingHandler struct {
	svc *service.SolvingService
}

// NewSolvingHandler creates a new solving handler
func NewSolvingHandler(svc *service.SolvingService) *SolvingHandler {
	return &SolvingHandler{svc: svc}
}

// List handles GET /v1/solvings
func (h *SolvingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	summaries, err := h.svc.ListUserSolvings(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, summaries)
}

// Submit handles POST /v1/solvings
func (h *SolvingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SubmitSolvingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	solving, err := h.svc.Submit(ctx, userID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, solving)
}

// SuccessRate handles GET /v1/problems/{problemId}/rate
func (h *SolvingHandler) SuccessRate(w http.ResponseWriter, r *http.Request) {
	problemID := r.PathValue("problemId")

	rate, err := h.svc.SuccessRate(r.Context(), problemID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, rate)
}

func (h *SolvingHandler) handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
