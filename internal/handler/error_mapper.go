package handler

import (
	"errors"
	"log/slog"

	"github.com/prosn/api/internal/model"
	"github.com/prosn/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Services may return ProblemDetails directly for validation failures
	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrPostNotFound):
		return model.NewNotFoundError("post")
	case errors.Is(err, service.ErrProblemNotFound):
		return model.NewNotFoundError("problem")
	case errors.Is(err, service.ErrStudyGroupNotFound):
		return model.NewNotFoundError("study group")
	case errors.Is(err, service.ErrTagNotFound):
		return model.NewNotFoundError("tag")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotPostOwner),
		errors.Is(err, service.ErrNotStudyOwner):
		return model.NewForbiddenError(err.Error())

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAlreadyStudyMember),
		errors.Is(err, service.ErrNotStudyMember):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrUnknownTag):
		return model.NewValidationError([]model.FieldError{{Field: "tags", Message: err.Error()}})
	case errors.Is(err, service.ErrPostDeleted),
		errors.Is(err, service.ErrUnsupportedPostKind):
		return model.NewValidationError([]model.FieldError{{Field: "post", Message: err.Error()}})
	case errors.Is(err, service.ErrStudyFull):
		return model.NewValidationError([]model.FieldError{{Field: "limit", Message: err.Error()}})

	default:
		slog.Error("unhandled service error", slog.Any("error", err))
		return model.NewInternalError("An unexpected error occurred")
	}
}
