package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Lookup Errors =====
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrProblemNotFound    = errors.New("problem not found")
	ErrStudyGroupNotFound = errors.New("study group not found")
	ErrTagNotFound        = errors.New("tag not found")
)

// ===== Post Errors =====
var (
	ErrUnknownTag          = errors.New("unknown tag code")
	ErrPostDeleted         = errors.New("post has been deleted")
	ErrUnsupportedPostKind = errors.New("unsupported post kind")
	ErrNotPostOwner        = errors.New("not the owner of this post")
)

// ===== Study Errors =====
var (
	ErrNotStudyOwner      = errors.New("not the owner of this study group")
	ErrAlreadyStudyMember = errors.New("already a member of this study group")
	ErrNotStudyMember     = errors.New("not a member of this study group")
	ErrStudyFull          = errors.New("study group is full")
)
