package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prosn/api/internal/model"
)

func newTestPostService(postRepo *mockPostRepo, userRepo *mockUserRepo, tagRepo *mockTagRepo, reactionRepo *mockReactionRepo) *PostService {
	if postRepo == nil {
		postRepo = &mockPostRepo{}
	}
	if userRepo == nil {
		userRepo = existingUser()
	}
	if tagRepo == nil {
		tagRepo = &mockTagRepo{}
	}
	if reactionRepo == nil {
		reactionRepo = &mockReactionRepo{}
	}
	return NewPostService(PostServiceConfig{
		PostRepo:     postRepo,
		UserRepo:     userRepo,
		TagRepo:      tagRepo,
		ReactionRepo: reactionRepo,
	})
}

func knownTags(codes ...string) *mockTagRepo {
	known := make(map[string]bool, len(codes))
	for _, c := range codes {
		known[c] = true
	}
	return &mockTagRepo{
		getByCodeFunc: func(ctx context.Context, code string) (*model.Tag, error) {
			if known[code] {
				return &model.Tag{ID: "tag:" + code, Code: code, Name: code}, nil
			}
			return nil, nil
		},
	}
}

// ============================================================================
// WriteProblem Tests
// ============================================================================

func TestWriteProblem_ResolvesTagsAndCreates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var createdTags []model.Tag
	postRepo := &mockPostRepo{
		createFunc: func(ctx context.Context, post *model.Post, tags []model.Tag) (*model.Post, error) {
			createdTags = tags
			post.ID = "post:1"
			return post, nil
		},
	}
	svc := newTestPostService(postRepo, nil, knownTags("go", "sql"), nil)

	post, err := svc.WriteProblem(ctx, "user:1", &model.WriteProblemRequest{
		Title:    "two sum",
		MainText: "find indices",
		Answer:   "0,1",
		Tags:     []string{"go", "sql"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Kind != model.PostKindProblem {
		t.Errorf("expected problem kind, got %s", post.Kind)
	}
	if len(createdTags) != 2 {
		t.Errorf("expected 2 tags passed to create, got %d", len(createdTags))
	}
}

func TestWriteProblem_UnknownTag_NothingWritten(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	created := false
	postRepo := &mockPostRepo{
		createFunc: func(ctx context.Context, post *model.Post, tags []model.Tag) (*model.Post, error) {
			created = true
			return post, nil
		},
	}
	svc := newTestPostService(postRepo, nil, knownTags("go"), nil)

	_, err := svc.WriteProblem(ctx, "user:1", &model.WriteProblemRequest{
		Title:    "two sum",
		MainText: "find indices",
		Answer:   "0,1",
		Tags:     []string{"go", "nosuchtag"},
	})
	if !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	if created {
		t.Error("expected no post create after tag resolution failure")
	}
}

func TestWriteProblem_UserNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestPostService(nil, &mockUserRepo{}, nil, nil)

	_, err := svc.WriteProblem(ctx, "user:ghost", &model.WriteProblemRequest{
		Title:    "t",
		MainText: "m",
		Answer:   "a",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestWriteInformation_NoAnswerRequired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestPostService(nil, nil, knownTags("news"), nil)

	post, err := svc.WriteInformation(ctx, "user:1", &model.WriteInformationRequest{
		Title:    "release notes",
		MainText: "1.22 is out",
		Tags:     []string{"news"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Kind != model.PostKindInformation {
		t.Errorf("expected information kind, got %s", post.Kind)
	}
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestDeletePost_OnlyOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, UserID: "user:owner"}, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	if err := svc.Delete(ctx, "post:1", "user:other"); !errors.Is(err, ErrNotPostOwner) {
		t.Errorf("expected ErrNotPostOwner, got %v", err)
	}
	if err := svc.Delete(ctx, "post:1", "user:owner"); err != nil {
		t.Errorf("unexpected error for owner delete: %v", err)
	}
}

func TestDeletePost_AlreadyDeleted_NoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	softDeleted := false
	postRepo := &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, UserID: "user:owner", IsDeleted: true}, nil
		},
		softDeleteFunc: func(ctx context.Context, id string) error {
			softDeleted = true
			return nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	if err := svc.Delete(ctx, "post:1", "user:owner"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if softDeleted {
		t.Error("expected no second soft delete")
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestPostService(&mockPostRepo{}, nil, nil, nil)

	if err := svc.Delete(ctx, "post:ghost", "user:1"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

// ============================================================================
// GetPostDetail Tests
// ============================================================================

func TestGetPostDetail_Problem_IncludesAnswerAndCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{
				ID:       id,
				Kind:     model.PostKindProblem,
				Title:    "two sum",
				UserID:   "user:owner",
				MainText: "find indices",
				Answer:   "0,1",
				Views:    4,
			}, nil
		},
	}
	reactionRepo := &mockReactionRepo{
		countByPostFunc: func(ctx context.Context, postID string) (int, int, error) {
			return 3, 1, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, reactionRepo)

	detail, err := svc.GetPostDetail(ctx, "post:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Answer != "0,1" {
		t.Errorf("expected answer in problem detail, got %q", detail.Answer)
	}
	if detail.NumOfLikes != 3 || detail.NumOfDislikes != 1 {
		t.Errorf("expected counts 3/1, got %d/%d", detail.NumOfLikes, detail.NumOfDislikes)
	}
	if detail.Views != 5 {
		t.Errorf("expected view bump to 5, got %d", detail.Views)
	}
}

func TestGetPostDetail_Information_OmitsAnswer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{
				ID:       id,
				Kind:     model.PostKindInformation,
				Title:    "release notes",
				UserID:   "user:owner",
				MainText: "1.22 is out",
				Answer:   "should never leak",
			}, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	detail, err := svc.GetPostDetail(ctx, "post:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Answer != "" {
		t.Errorf("expected no answer in information detail, got %q", detail.Answer)
	}
}

func TestGetPostDetail_Deleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, Kind: model.PostKindProblem, IsDeleted: true}, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	if _, err := svc.GetPostDetail(ctx, "post:1"); !errors.Is(err, ErrPostDeleted) {
		t.Errorf("expected ErrPostDeleted, got %v", err)
	}
}

func TestGetPostDetail_UnknownKind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, Kind: model.PostKind("poll")}, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	if _, err := svc.GetPostDetail(ctx, "post:1"); !errors.Is(err, ErrUnsupportedPostKind) {
		t.Errorf("expected ErrUnsupportedPostKind, got %v", err)
	}
}

// ============================================================================
// List Tests
// ============================================================================

func TestListProblems_FiltersByKindAndPaginates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotKind *model.PostKind
	var gotPage model.PageRequest
	postRepo := &mockPostRepo{
		listFunc: func(ctx context.Context, kind *model.PostKind, page model.PageRequest) ([]model.PostSummary, int, error) {
			gotKind = kind
			gotPage = page
			return []model.PostSummary{{ID: "post:1"}}, 41, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	result, err := svc.ListProblems(ctx, model.PageRequest{Page: 1, Size: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKind == nil || *gotKind != model.PostKindProblem {
		t.Errorf("expected problem kind filter, got %v", gotKind)
	}
	if gotPage.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", gotPage.Offset())
	}
	if result.TotalElements != 41 || result.TotalPages != 3 {
		t.Errorf("expected 41 elements / 3 pages, got %d/%d", result.TotalElements, result.TotalPages)
	}
}

func TestListPosts_NormalizesPage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotPage model.PageRequest
	postRepo := &mockPostRepo{
		listFunc: func(ctx context.Context, kind *model.PostKind, page model.PageRequest) ([]model.PostSummary, int, error) {
			gotPage = page
			return nil, 0, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	if _, err := svc.ListPosts(ctx, model.PageRequest{Page: -3, Size: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage.Page != 0 || gotPage.Size != model.DefaultPageSize {
		t.Errorf("expected normalized page 0/%d, got %d/%d", model.DefaultPageSize, gotPage.Page, gotPage.Size)
	}
}

// ============================================================================
// LikeDislike Tests
// ============================================================================

func livePost() *mockPostRepo {
	return &mockPostRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, Kind: model.PostKindProblem, UserID: "user:owner"}, nil
		},
	}
}

func TestLikeDislike_NoExisting_Creates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	created := false
	reactionRepo := &mockReactionRepo{
		createFunc: func(ctx context.Context, userID, postID string, isLike bool) error {
			created = true
			if !isLike {
				t.Errorf("expected like, got dislike")
			}
			return nil
		},
	}
	svc := newTestPostService(livePost(), nil, nil, reactionRepo)

	err := svc.LikeDislike(ctx, "user:1", &model.LikeDislikeRequest{PostID: "post:1", IsLike: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected reaction create")
	}
}

func TestLikeDislike_SameType_Deletes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deleted := false
	reactionRepo := &mockReactionRepo{
		getByUserAndPostFunc: func(ctx context.Context, userID, postID string) (*model.LikeDislike, error) {
			return &model.LikeDislike{ID: "like_dislike:1", UserID: userID, PostID: postID, IsLike: true}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestPostService(livePost(), nil, nil, reactionRepo)

	err := svc.LikeDislike(ctx, "user:1", &model.LikeDislikeRequest{PostID: "post:1", IsLike: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected reaction delete on repeated like")
	}
}

func TestLikeDislike_OppositeType_Flips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	flipped := false
	reactionRepo := &mockReactionRepo{
		getByUserAndPostFunc: func(ctx context.Context, userID, postID string) (*model.LikeDislike, error) {
			return &model.LikeDislike{ID: "like_dislike:1", UserID: userID, PostID: postID, IsLike: true}, nil
		},
		flipTypeFunc: func(ctx context.Context, id string, isLike bool) error {
			flipped = true
			if isLike {
				t.Errorf("expected flip to dislike")
			}
			return nil
		},
	}
	svc := newTestPostService(livePost(), nil, nil, reactionRepo)

	err := svc.LikeDislike(ctx, "user:1", &model.LikeDislikeRequest{PostID: "post:1", IsLike: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flipped {
		t.Error("expected reaction flip")
	}
}

func TestLikeDislike_TwoClickCycle_RestoresOriginalState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var stored *model.LikeDislike
	reactionRepo := &mockReactionRepo{
		getByUserAndPostFunc: func(ctx context.Context, userID, postID string) (*model.LikeDislike, error) {
			return stored, nil
		},
		createFunc: func(ctx context.Context, userID, postID string, isLike bool) error {
			stored = &model.LikeDislike{ID: "like_dislike:1", UserID: userID, PostID: postID, IsLike: isLike}
			return nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			stored = nil
			return nil
		},
	}
	svc := newTestPostService(livePost(), nil, nil, reactionRepo)

	req := &model.LikeDislikeRequest{PostID: "post:1", IsLike: true}
	if err := svc.LikeDislike(ctx, "user:1", req); err != nil {
		t.Fatalf("first click: %v", err)
	}
	if stored == nil {
		t.Fatal("expected reaction after first click")
	}
	if err := svc.LikeDislike(ctx, "user:1", req); err != nil {
		t.Fatalf("second click: %v", err)
	}
	if stored != nil {
		t.Error("expected no reaction after identical second click")
	}
}

// ============================================================================
// Search Tests
// ============================================================================

func TestSearch_DeduplicatesByPostID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := &mockPostRepo{
		searchFunc: func(ctx context.Context, title, code string) ([]model.PostSummary, error) {
			return []model.PostSummary{
				{ID: "post:1", Title: "two sum"},
				{ID: "post:2", Title: "two pointers"},
				{ID: "post:1", Title: "two sum"},
			}, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, nil)

	results, err := svc.Search(ctx, &model.SearchPostRequest{Title: "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 de-duplicated results, got %d", len(results))
	}
}
