package handler

import (
	"net/http"

	"github.com/prosn/api/internal/middleware"
	"github.com/prosn/api/internal/model"
	"github.com/prosn/api/internal/service"
)

// StudyHandler handles study group HTTP requests
type StudyHandler struct {
	svc *service.StudyService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(svc *service.StudyService) *StudyHandler {
	return &StudyHandler{svc: svc}
}

// Create handles POST /v1/studies
func (h *StudyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.StudyGroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	group, err := h.svc.Create(ctx, userID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, group)
}

// Update handles PATCH /v1/studies/{studyId}
func (h *StudyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	studyID := r.PathValue("studyId")

	var req model.StudyGroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.svc.Update(ctx, studyID, userID, &req); err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

// Delete handles DELETE /v1/studies/{studyId}
func (h *StudyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	studyID := r.PathValue("studyId")

	if err := h.svc.Delete(ctx, studyID, userID); err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

// Join handles POST /v1/studies/{studyId}/join
func (h *StudyHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	studyID := r.PathValue("studyId")

	if err := h.svc.Join(ctx, userID, studyID); err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"status": "joined"})
}

// Leave handles POST /v1/studies/{studyId}/leave
func (h *StudyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	studyID := r.PathValue("studyId")

	if err := h.svc.Leave(ctx, userID, studyID); err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"status": "left"})
}

// GetByID handles GET /v1/studies/{studyId}
func (h *StudyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	studyID := r.PathValue("studyId")

	detail, err := h.svc.GetStudyGroup(ctx, userID, studyID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, detail)
}

func (h *StudyHandler) handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
