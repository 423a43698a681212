package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prosn/api/internal/model"
)

func newTestStudyService(studyRepo *mockStudyRepo, userRepo *mockUserRepo, tagRepo *mockTagRepo) *StudyService {
	if studyRepo == nil {
		studyRepo = &mockStudyRepo{}
	}
	if userRepo == nil {
		userRepo = existingUser()
	}
	if tagRepo == nil {
		tagRepo = &mockTagRepo{}
	}
	return NewStudyService(StudyServiceConfig{
		StudyRepo: studyRepo,
		UserRepo:  userRepo,
		TagRepo:   tagRepo,
	})
}

func studyRequest() *model.StudyGroupRequest {
	return &model.StudyGroupRequest{
		Title:     "algorithm study",
		MainText:  "weekly problems",
		MaxPerson: 4,
		Place:     "online",
		ExpiredAt: time.Now().Add(30 * 24 * time.Hour),
	}
}

func groupOwnedBy(owner string, current, max int) *mockStudyRepo {
	return &mockStudyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.StudyGroup, error) {
			return &model.StudyGroup{
				ID:            id,
				Title:         "algorithm study",
				UserID:        owner,
				CurrentPerson: current,
				MaxPerson:     max,
				SecretText:    "discord invite",
			}, nil
		},
	}
}

// ============================================================================
// Create Tests
// ============================================================================

func TestCreateStudy_OwnerIsFirstMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var created *model.StudyGroup
	studyRepo := &mockStudyRepo{
		createFunc: func(ctx context.Context, group *model.StudyGroup, tags []model.Tag) (*model.StudyGroup, error) {
			group.ID = "study_group:1"
			group.CurrentPerson = 1
			created = group
			return group, nil
		},
	}
	svc := newTestStudyService(studyRepo, nil, knownTags("go"))

	req := studyRequest()
	req.Tags = []string{"go"}
	group, err := svc.Create(ctx, "user:1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.UserID != "user:1" {
		t.Fatalf("expected group owned by user:1, got %+v", created)
	}
	if group.CurrentPerson != 1 {
		t.Errorf("expected current_person 1, got %d", group.CurrentPerson)
	}
}

func TestCreateStudy_UnknownTag_NothingWritten(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	created := false
	studyRepo := &mockStudyRepo{
		createFunc: func(ctx context.Context, group *model.StudyGroup, tags []model.Tag) (*model.StudyGroup, error) {
			created = true
			return group, nil
		},
	}
	svc := newTestStudyService(studyRepo, nil, knownTags("go"))

	req := studyRequest()
	req.Tags = []string{"nosuchtag"}
	if _, err := svc.Create(ctx, "user:1", req); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	if created {
		t.Error("expected no group create after tag resolution failure")
	}
}

// ============================================================================
// Update / Delete Tests
// ============================================================================

func TestUpdateStudy_OnlyOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestStudyService(groupOwnedBy("user:owner", 1, 4), nil, nil)

	err := svc.Update(ctx, "study_group:1", "user:other", studyRequest())
	if !errors.Is(err, ErrNotStudyOwner) {
		t.Errorf("expected ErrNotStudyOwner, got %v", err)
	}
}

func TestUpdateStudy_ReplacesTags_SkipsClearWhenNoneExist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotClear bool
	var gotTags []model.Tag
	studyRepo := groupOwnedBy("user:owner", 1, 4)
	studyRepo.updateWithTagsFunc = func(ctx context.Context, group *model.StudyGroup, tags []model.Tag, clearTags bool) error {
		gotClear = clearTags
		gotTags = tags
		return nil
	}
	tagRepo := knownTags("go")
	tagRepo.getByStudyGroupFunc = func(ctx context.Context, groupID string) ([]model.Tag, error) {
		return []model.Tag{}, nil
	}
	svc := newTestStudyService(studyRepo, nil, tagRepo)

	req := studyRequest()
	req.Tags = []string{"go"}
	if err := svc.Update(ctx, "study_group:1", "user:owner", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotClear {
		t.Error("expected tag clear skipped when no rows exist")
	}
	if len(gotTags) != 1 {
		t.Errorf("expected 1 resolved tag, got %d", len(gotTags))
	}
}

func TestUpdateStudy_ClearsExistingTags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotClear bool
	studyRepo := groupOwnedBy("user:owner", 1, 4)
	studyRepo.updateWithTagsFunc = func(ctx context.Context, group *model.StudyGroup, tags []model.Tag, clearTags bool) error {
		gotClear = clearTags
		return nil
	}
	tagRepo := knownTags("go")
	tagRepo.getByStudyGroupFunc = func(ctx context.Context, groupID string) ([]model.Tag, error) {
		return []model.Tag{{ID: "tag:old", Code: "old"}}, nil
	}
	svc := newTestStudyService(studyRepo, nil, tagRepo)

	req := studyRequest()
	req.Tags = []string{"go"}
	if err := svc.Update(ctx, "study_group:1", "user:owner", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotClear {
		t.Error("expected existing tag rows cleared")
	}
}

func TestDeleteStudy_OnlyOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cascaded := false
	studyRepo := groupOwnedBy("user:owner", 1, 4)
	studyRepo.deleteCascadeFunc = func(ctx context.Context, groupID string) error {
		cascaded = true
		return nil
	}
	svc := newTestStudyService(studyRepo, nil, nil)

	if err := svc.Delete(ctx, "study_group:1", "user:other"); !errors.Is(err, ErrNotStudyOwner) {
		t.Errorf("expected ErrNotStudyOwner, got %v", err)
	}
	if cascaded {
		t.Error("expected no cascade for non-owner")
	}
	if err := svc.Delete(ctx, "study_group:1", "user:owner"); err != nil {
		t.Errorf("unexpected error for owner delete: %v", err)
	}
	if !cascaded {
		t.Error("expected cascade delete")
	}
}

func TestDeleteStudy_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestStudyService(&mockStudyRepo{}, nil, nil)

	if err := svc.Delete(ctx, "study_group:ghost", "user:1"); !errors.Is(err, ErrStudyGroupNotFound) {
		t.Errorf("expected ErrStudyGroupNotFound, got %v", err)
	}
}

// ============================================================================
// Join / Leave Tests
// ============================================================================

func TestJoinStudy_AddsMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	added := false
	studyRepo := groupOwnedBy("user:owner", 1, 4)
	studyRepo.addMemberFunc = func(ctx context.Context, groupID, userID string) error {
		added = true
		return nil
	}
	svc := newTestStudyService(studyRepo, nil, nil)

	if err := svc.Join(ctx, "user:2", "study_group:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Error("expected membership insert")
	}
}

func TestJoinStudy_Twice_Conflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	studyRepo := groupOwnedBy("user:owner", 2, 4)
	studyRepo.isMemberFunc = func(ctx context.Context, groupID, userID string) (bool, error) {
		return true, nil
	}
	svc := newTestStudyService(studyRepo, nil, nil)

	if err := svc.Join(ctx, "user:2", "study_group:1"); !errors.Is(err, ErrAlreadyStudyMember) {
		t.Errorf("expected ErrAlreadyStudyMember, got %v", err)
	}
}

func TestJoinStudy_Full(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestStudyService(groupOwnedBy("user:owner", 4, 4), nil, nil)

	if err := svc.Join(ctx, "user:2", "study_group:1"); !errors.Is(err, ErrStudyFull) {
		t.Errorf("expected ErrStudyFull, got %v", err)
	}
}

func TestLeaveStudy_NonMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestStudyService(groupOwnedBy("user:owner", 2, 4), nil, nil)

	if err := svc.Leave(ctx, "user:stranger", "study_group:1"); !errors.Is(err, ErrNotStudyMember) {
		t.Errorf("expected ErrNotStudyMember, got %v", err)
	}
}

func TestLeaveStudy_RemovesMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	removed := false
	studyRepo := groupOwnedBy("user:owner", 2, 4)
	studyRepo.isMemberFunc = func(ctx context.Context, groupID, userID string) (bool, error) {
		return true, nil
	}
	studyRepo.removeMemberFunc = func(ctx context.Context, groupID, userID string) error {
		removed = true
		return nil
	}
	svc := newTestStudyService(studyRepo, nil, nil)

	if err := svc.Leave(ctx, "user:2", "study_group:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Error("expected membership delete")
	}
}

// ============================================================================
// SweepExpired Tests
// ============================================================================

func TestSweepExpired_CascadesEachExpiredGroup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var cascaded []string
	studyRepo := &mockStudyRepo{
		listExpiredFunc: func(ctx context.Context) ([]string, error) {
			return []string{"study_group:1", "study_group:2"}, nil
		},
		deleteCascadeFunc: func(ctx context.Context, groupID string) error {
			cascaded = append(cascaded, groupID)
			return nil
		},
	}
	svc := newTestStudyService(studyRepo, nil, nil)

	removed, err := svc.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 || len(cascaded) != 2 {
		t.Errorf("expected 2 groups removed, got removed=%d cascaded=%v", removed, cascaded)
	}
}

func TestSweepExpired_NothingExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestStudyService(&mockStudyRepo{}, nil, nil)

	removed, err := svc.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected nothing removed, got %d", removed)
	}
}

// ============================================================================
// GetStudyGroup Tests
// ============================================================================

func TestGetStudyGroup_MemberSeesSecretAndRoster(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	studyRepo := groupOwnedBy("user:owner", 2, 4)
	studyRepo.isMemberFunc = func(ctx context.Context, groupID, userID string) (bool, error) {
		return true, nil
	}
	studyRepo.getMemberNamesFunc = func(ctx context.Context, groupID string) ([]string, error) {
		return []string{"owner", "member"}, nil
	}
	svc := newTestStudyService(studyRepo, nil, nil)

	detail, err := svc.GetStudyGroup(ctx, "user:2", "study_group:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.IsMember {
		t.Error("expected member view")
	}
	if detail.SecretText != "discord invite" {
		t.Errorf("expected secret text for member, got %q", detail.SecretText)
	}
	if len(detail.Members) != 2 {
		t.Errorf("expected 2 member names, got %d", len(detail.Members))
	}
}

func TestGetStudyGroup_NonMemberGetsPublicViewOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestStudyService(groupOwnedBy("user:owner", 2, 4), nil, nil)

	detail, err := svc.GetStudyGroup(ctx, "user:stranger", "study_group:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.IsMember {
		t.Error("expected non-member view")
	}
	if detail.SecretText != "" {
		t.Errorf("expected no secret text, got %q", detail.SecretText)
	}
	if detail.Members != nil {
		t.Errorf("expected no roster, got %v", detail.Members)
	}
}
