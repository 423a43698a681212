package handler

import (
	"net/http"

	"github.com/prosn/api/internal/service"
)

// TagHandler serves the tag vocabulary
type TagHandler struct {
	svc *service.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// List handles GET /v1/tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, tags)
}
