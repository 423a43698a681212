package service

import (
	"context"
	"fmt"
	"math"

	"github.com/prosn/api/internal/model"
)

// SolvingRepository defines the interface for solve record storage
type SolvingRepository interface {
	GetByUserAndProblem(ctx context.Context, userID, problemID string) (*model.Solving, error)
	Create(ctx context.Context, solving *model.Solving, points int) (*model.Solving, error)
	MarkCorrect(ctx context.Context, solvingID, userID string, points int) error
	ListByUser(ctx context.Context, userID string) ([]model.SolvingSummary, error)
	CountByProblem(ctx context.Context, problemID string) (submits, firstRights int, err error)
}

// SolvingUserRepository defines the interface for solver lookups
type SolvingUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// SolvingPostRepository defines the interface for problem lookups
type SolvingPostRepository interface {
	GetByID(ctx context.Context, id string) (*model.Post, error)
}

// SolvingTagRepository defines the interface for problem tag reads
type SolvingTagRepository interface {
	GetByPost(ctx context.Context, postID string) ([]model.Tag, error)
}

// SolvingService handles solve submission business logic
type SolvingService struct {
	repo     SolvingRepository
	userRepo SolvingUserRepository
	postRepo SolvingPostRepository
	tagRepo  SolvingTagRepository
}

// SolvingServiceConfig holds configuration for the solving service
type SolvingServiceConfig struct {
	SolvingRepo SolvingRepository
	UserRepo    SolvingUserRepository
	PostRepo    SolvingPostRepository
	TagRepo     SolvingTagRepository
}

// NewSolvingService creates a new solving service
func NewSolvingService(cfg SolvingServiceConfig) *SolvingService {
	return &SolvingService{
		repo:     cfg.SolvingRepo,
		userRepo: cfg.UserRepo,
		postRepo: cfg.PostRepo,
		tagRepo:  cfg.TagRepo,
	}
}

// ListUserSolvings returns a user's solving history enriched with the
// problem titles and tags.
func (s *SolvingService) ListUserSolvings(ctx context.Context, userID string) ([]model.SolvingSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	summaries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solvings: %w", err)
	}
	for i := range summaries {
		tags, err := s.tagRepo.GetByPost(ctx, summaries[i].ProblemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get problem tags: %w", err)
		}
		summaries[i].Tags = tags
	}
	return summaries, nil
}

// Submit records one attempt on a problem. A user's first submission
// creates the record with both correctness flags set to the outcome; a
// correct resubmission after a wrong first attempt flips the current
// flag only. The point bonus is paid the first time the user gets the
// problem right, never again; a record that is already right stays
// unchanged.
func (s *SolvingService) Submit(ctx context.Context, userID string, req *model.SubmitSolvingRequest) (*model.Solving, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireProblem(ctx, req.ProblemID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUserAndProblem(ctx, userID, req.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get solving: %w", err)
	}

	if existing == nil {
		points := 0
		if req.IsRight {
			points = model.SolvePointBonus
		}
		solving := &model.Solving{
			UserID:       userID,
			ProblemID:    req.ProblemID,
			IsRight:      req.IsRight,
			FirstIsRight: req.IsRight,
		}
		created, err := s.repo.Create(ctx, solving, points)
		if err != nil {
			return nil, fmt.Errorf("failed to create solving: %w", err)
		}
		return created, nil
	}

	if existing.IsRight || !req.IsRight {
		return existing, nil
	}

	if err := s.repo.MarkCorrect(ctx, existing.ID, userID, model.SolvePointBonus); err != nil {
		return nil, fmt.Errorf("failed to mark solving correct: %w", err)
	}
	existing.IsRight = true
	return existing, nil
}

// SuccessRate returns the percentage of users who got the problem right
// on their first attempt, rounded to two decimals. A problem nobody has
// attempted reports a zero rate and count.
func (s *SolvingService) SuccessRate(ctx context.Context, problemID string) (*model.SuccessRate, error) {
	if err := s.requireProblem(ctx, problemID); err != nil {
		return nil, err
	}

	submits, firstRights, err := s.repo.CountByProblem(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to count solvings: %w", err)
	}

	rate := 0.0
	if submits > 0 {
		rate = math.Round(float64(firstRights)/float64(submits)*100*100) / 100
	}
	return &model.SuccessRate{
		ProblemID:   problemID,
		Rate:        rate,
		SubmitCount: submits,
	}, nil
}

func (s *SolvingService) requireUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// requireProblem rejects IDs that do not point at a live problem post.
// Information posts and deleted posts are not solvable.
func (s *SolvingService) requireProblem(ctx context.Context, problemID string) error {
	post, err := s.postRepo.GetByID(ctx, problemID)
	if err != nil {
		return fmt.Errorf("failed to get problem: %w", err)
	}
	if post == nil || post.IsDeleted || post.Kind != model.PostKindProblem {
		return ErrProblemNotFound
	}
	return nil
}
