package service

import (
	"context"
	"fmt"

	"github.com/prosn/api/internal/model"
)

// PostRepository defines the interface for post storage
type PostRepository interface {
	Create(ctx context.Context, post *model.Post, tags []model.Tag) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	List(ctx context.Context, kind *model.PostKind, page model.PageRequest) ([]model.PostSummary, int, error)
	Search(ctx context.Context, title, code string) ([]model.PostSummary, error)
}

// PostUserRepository defines the interface for author lookups
type PostUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PostTagRepository defines the interface for tag resolution and reads
type PostTagRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Tag, error)
	GetByPost(ctx context.Context, postID string) ([]model.Tag, error)
}

// ReactionRepository defines the interface for like/dislike storage
type ReactionRepository interface {
	GetByUserAndPost(ctx context.Context, userID, postID string) (*model.LikeDislike, error)
	Create(ctx context.Context, userID, postID string, isLike bool) error
	Delete(ctx context.Context, id string) error
	FlipType(ctx context.Context, id string, isLike bool) error
	CountByPost(ctx context.Context, postID string) (likes, dislikes int, err error)
}

// PostService handles post business logic
type PostService struct {
	repo         PostRepository
	userRepo     PostUserRepository
	tagRepo      PostTagRepository
	reactionRepo ReactionRepository
}

// PostServiceConfig holds configuration for the post service
type PostServiceConfig struct {
	PostRepo     PostRepository
	UserRepo     PostUserRepository
	TagRepo      PostTagRepository
	ReactionRepo ReactionRepository
}

// NewPostService creates a new post service
func NewPostService(cfg PostServiceConfig) *PostService {
	return &PostService{
		repo:         cfg.PostRepo,
		userRepo:     cfg.UserRepo,
		tagRepo:      cfg.TagRepo,
		reactionRepo: cfg.ReactionRepo,
	}
}

// WriteProblem creates a new problem post with its tag associations.
// Every tag code must resolve before anything is written.
func (s *PostService) WriteProblem(ctx context.Context, userID string, req *model.WriteProblemRequest) (*model.Post, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Kind:     model.PostKindProblem,
		Title:    req.Title,
		UserID:   userID,
		MainText: req.MainText,
		Answer:   req.Answer,
		Example1: req.Example1,
		Example2: req.Example2,
		Example3: req.Example3,
		Example4: req.Example4,
	}

	created, err := s.repo.Create(ctx, post, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}
	return created, nil
}

// WriteInformation creates a new information post with its tag
// associations.
func (s *PostService) WriteInformation(ctx context.Context, userID string, req *model.WriteInformationRequest) (*model.Post, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Kind:     model.PostKindInformation,
		Title:    req.Title,
		UserID:   userID,
		MainText: req.MainText,
	}

	created, err := s.repo.Create(ctx, post, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to create information: %w", err)
	}
	return created, nil
}

// Delete soft-deletes a post. Only the author may delete; deleting an
// already-deleted post is a no-op.
func (s *PostService) Delete(ctx context.Context, postID, userID string) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}
	if post.IsDeleted {
		return nil
	}
	return s.repo.SoftDelete(ctx, postID)
}

// GetPostDetail returns the full single-post view with author, tags and
// reaction counts, bumping the view counter. The fields included depend
// on the post kind.
func (s *PostService) GetPostDetail(ctx context.Context, postID string) (*model.PostDetail, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.IsDeleted {
		return nil, ErrPostDeleted
	}

	detail := &model.PostDetail{
		ID:       post.ID,
		Kind:     post.Kind,
		Title:    post.Title,
		MainText: post.MainText,
		Views:    post.Views + 1,
	}
	switch post.Kind {
	case model.PostKindProblem:
		detail.Answer = post.Answer
		detail.Example1 = post.Example1
		detail.Example2 = post.Example2
		detail.Example3 = post.Example3
		detail.Example4 = post.Example4
	case model.PostKindInformation:
		// main text only
	default:
		return nil, ErrUnsupportedPostKind
	}

	if err := s.repo.IncrementViews(ctx, postID); err != nil {
		return nil, fmt.Errorf("failed to bump views: %w", err)
	}

	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	if author != nil {
		detail.User = author.Summary()
	}

	tags, err := s.tagRepo.GetByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	detail.Tags = tags

	likes, dislikes, err := s.reactionRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	detail.NumOfLikes = likes
	detail.NumOfDislikes = dislikes

	return detail, nil
}

// ListPosts returns a page of all non-deleted posts regardless of kind
func (s *PostService) ListPosts(ctx context.Context, page model.PageRequest) (model.PostPage, error) {
	return s.listByKind(ctx, nil, page)
}

// ListProblems returns a page of non-deleted problem posts
func (s *PostService) ListProblems(ctx context.Context, page model.PageRequest) (model.PostPage, error) {
	kind := model.PostKindProblem
	return s.listByKind(ctx, &kind, page)
}

// ListInformation returns a page of non-deleted information posts
func (s *PostService) ListInformation(ctx context.Context, page model.PageRequest) (model.PostPage, error) {
	kind := model.PostKindInformation
	return s.listByKind(ctx, &kind, page)
}

func (s *PostService) listByKind(ctx context.Context, kind *model.PostKind, page model.PageRequest) (model.PostPage, error) {
	page = page.Normalize()

	summaries, total, err := s.repo.List(ctx, kind, page)
	if err != nil {
		return model.PostPage{}, fmt.Errorf("failed to list posts: %w", err)
	}
	if err := s.fillReactionCounts(ctx, summaries); err != nil {
		return model.PostPage{}, err
	}
	return model.NewPostPage(summaries, total, page.Size), nil
}

// LikeDislike applies one reaction click as a three-state toggle: no
// existing reaction creates one, a reaction of the same type removes
// it, a reaction of the opposite type flips in place.
func (s *PostService) LikeDislike(ctx context.Context, userID string, req *model.LikeDislikeRequest) error {
	if errs := req.Validate(); len(errs) > 0 {
		return model.NewValidationError(errs)
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.IsDeleted {
		return ErrPostDeleted
	}

	existing, err := s.reactionRepo.GetByUserAndPost(ctx, userID, req.PostID)
	if err != nil {
		return fmt.Errorf("failed to get reaction: %w", err)
	}

	switch {
	case existing == nil:
		return s.reactionRepo.Create(ctx, userID, req.PostID, req.IsLike)
	case existing.IsLike == req.IsLike:
		return s.reactionRepo.Delete(ctx, existing.ID)
	default:
		return s.reactionRepo.FlipType(ctx, existing.ID, req.IsLike)
	}
}

// Search finds posts by title substring and/or tag code. A post matched
// through several of its tags appears once.
func (s *PostService) Search(ctx context.Context, req *model.SearchPostRequest) ([]model.PostSummary, error) {
	rows, err := s.repo.Search(ctx, req.Title, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	summaries := make([]model.PostSummary, 0, len(rows))
	for _, row := range rows {
		if seen[row.ID] {
			continue
		}
		seen[row.ID] = true
		summaries = append(summaries, row)
	}

	if err := s.fillReactionCounts(ctx, summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *PostService) requireUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// resolveTags maps tag codes to tag rows. Any code without a row fails
// the whole call, so nothing gets written for a request with a typo.
func (s *PostService) resolveTags(ctx context.Context, codes []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := s.tagRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag: %w", err)
		}
		if tag == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTag, code)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *PostService) fillReactionCounts(ctx context.Context, summaries []model.PostSummary) error {
	for i := range summaries {
		likes, dislikes, err := s.reactionRepo.CountByPost(ctx, summaries[i].ID)
		if err != nil {
			return fmt.Errorf("failed to count reactions: %w", err)
		}
		summaries[i].NumOfLikes = likes
		summaries[i].NumOfDislikes = dislikes
	}
	return nil
}
