package service

import (
	"context"

	"github.com/prosn/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockTagRepo struct {
	getAllFunc          func(ctx context.Context) ([]model.Tag, error)
	getByCodeFunc       func(ctx context.Context, code string) (*model.Tag, error)
	getByPostFunc       func(ctx context.Context, postID string) ([]model.Tag, error)
	getByStudyGroupFunc func(ctx context.Context, groupID string) ([]model.Tag, error)
}

func (m *mockTagRepo) GetAll(ctx context.Context) ([]model.Tag, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTagRepo) GetByCode(ctx context.Context, code string) (*model.Tag, error) {
	if m.getByCodeFunc != nil {
		return m.getByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockTagRepo) GetByPost(ctx context.Context, postID string) ([]model.Tag, error) {
	if m.getByPostFunc != nil {
		return m.getByPostFunc(ctx, postID)
	}
	return nil, nil
}

func (m *mockTagRepo) GetByStudyGroup(ctx context.Context, groupID string) ([]model.Tag, error) {
	if m.getByStudyGroupFunc != nil {
		return m.getByStudyGroupFunc(ctx, groupID)
	}
	return nil, nil
}

type mockPostRepo struct {
	createFunc         func(ctx context.Context, post *model.Post, tags []model.Tag) (*model.Post, error)
	getByIDFunc        func(ctx context.Context, id string) (*model.Post, error)
	softDeleteFunc     func(ctx context.Context, id string) error
	incrementViewsFunc func(ctx context.Context, id string) error
	listFunc           func(ctx context.Context, kind *model.PostKind, page model.PageRequest) ([]model.PostSummary, int, error)
	searchFunc         func(ctx context.Context, title, code string) ([]model.PostSummary, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post, tags []model.Tag) (*model.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, post, tags)
	}
	return post, nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) SoftDelete(ctx context.Context, id string) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) IncrementViews(ctx context.Context, id string) error {
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) List(ctx context.Context, kind *model.PostKind, page model.PageRequest) ([]model.PostSummary, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, kind, page)
	}
	return nil, 0, nil
}

func (m *mockPostRepo) Search(ctx context.Context, title, code string) ([]model.PostSummary, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, title, code)
	}
	return nil, nil
}

type mockReactionRepo struct {
	getByUserAndPostFunc func(ctx context.Context, userID, postID string) (*model.LikeDislike, error)
	createFunc           func(ctx context.Context, userID, postID string, isLike bool) error
	deleteFunc           func(ctx context.Context, id string) error
	flipTypeFunc         func(ctx context.Context, id string, isLike bool) error
	countByPostFunc      func(ctx context.Context, postID string) (int, int, error)
}

func (m *mockReactionRepo) GetByUserAndPost(ctx context.Context, userID, postID string) (*model.LikeDislike, error) {
	if m.getByUserAndPostFunc != nil {
		return m.getByUserAndPostFunc(ctx, userID, postID)
	}
	return nil, nil
}

func (m *mockReactionRepo) Create(ctx context.Context, userID, postID string, isLike bool) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, postID, isLike)
	}
	return nil
}

func (m *mockReactionRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockReactionRepo) FlipType(ctx context.Context, id string, isLike bool) error {
	if m.flipTypeFunc != nil {
		return m.flipTypeFunc(ctx, id, isLike)
	}
	return nil
}

func (m *mockReactionRepo) CountByPost(ctx context.Context, postID string) (int, int, error) {
	if m.countByPostFunc != nil {
		return m.countByPostFunc(ctx, postID)
	}
	return 0, 0, nil
}

type mockSolvingRepo struct {
	getByUserAndProblemFunc func(ctx context.Context, userID, problemID string) (*model.Solving, error)
	createFunc              func(ctx context.Context, solving *model.Solving, points int) (*model.Solving, error)
	markCorrectFunc         func(ctx context.Context, solvingID, userID string, points int) error
	listByUserFunc          func(ctx context.Context, userID string) ([]model.SolvingSummary, error)
	countByProblemFunc      func(ctx context.Context, problemID string) (int, int, error)
}

func (m *mockSolvingRepo) GetByUserAndProblem(ctx context.Context, userID, problemID string) (*model.Solving, error) {
	if m.getByUserAndProblemFunc != nil {
		return m.getByUserAndProblemFunc(ctx, userID, problemID)
	}
	return nil, nil
}

func (m *mockSolvingRepo) Create(ctx context.Context, solving *model.Solving, points int) (*model.Solving, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, solving, points)
	}
	return solving, nil
}

func (m *mockSolvingRepo) MarkCorrect(ctx context.Context, solvingID, userID string, points int) error {
	if m.markCorrectFunc != nil {
		return m.markCorrectFunc(ctx, solvingID, userID, points)
	}
	return nil
}

func (m *mockSolvingRepo) ListByUser(ctx context.Context, userID string) ([]model.SolvingSummary, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSolvingRepo) CountByProblem(ctx context.Context, problemID string) (int, int, error) {
	if m.countByProblemFunc != nil {
		return m.countByProblemFunc(ctx, problemID)
	}
	return 0, 0, nil
}

type mockStudyRepo struct {
	createFunc         func(ctx context.Context, group *model.StudyGroup, tags []model.Tag) (*model.StudyGroup, error)
	getByIDFunc        func(ctx context.Context, id string) (*model.StudyGroup, error)
	updateWithTagsFunc func(ctx context.Context, group *model.StudyGroup, tags []model.Tag, clearTags bool) error
	deleteCascadeFunc  func(ctx context.Context, groupID string) error
	addMemberFunc      func(ctx context.Context, groupID, userID string) error
	removeMemberFunc   func(ctx context.Context, groupID, userID string) error
	isMemberFunc       func(ctx context.Context, groupID, userID string) (bool, error)
	getMemberNamesFunc func(ctx context.Context, groupID string) ([]string, error)
	listExpiredFunc    func(ctx context.Context) ([]string, error)
}

func (m *mockStudyRepo) Create(ctx context.Context, group *model.StudyGroup, tags []model.Tag) (*model.StudyGroup, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, group, tags)
	}
	return group, nil
}

func (m *mockStudyRepo) GetByID(ctx context.Context, id string) (*model.StudyGroup, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStudyRepo) UpdateWithTags(ctx context.Context, group *model.StudyGroup, tags []model.Tag, clearTags bool) error {
	if m.updateWithTagsFunc != nil {
		return m.updateWithTagsFunc(ctx, group, tags, clearTags)
	}
	return nil
}

func (m *mockStudyRepo) DeleteCascade(ctx context.Context, groupID string) error {
	if m.deleteCascadeFunc != nil {
		return m.deleteCascadeFunc(ctx, groupID)
	}
	return nil
}

func (m *mockStudyRepo) AddMember(ctx context.Context, groupID, userID string) error {
	if m.addMemberFunc != nil {
		return m.addMemberFunc(ctx, groupID, userID)
	}
	return nil
}

func (m *mockStudyRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	if m.removeMemberFunc != nil {
		return m.removeMemberFunc(ctx, groupID, userID)
	}
	return nil
}

func (m *mockStudyRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	if m.isMemberFunc != nil {
		return m.isMemberFunc(ctx, groupID, userID)
	}
	return false, nil
}

func (m *mockStudyRepo) GetMemberNames(ctx context.Context, groupID string) ([]string, error) {
	if m.getMemberNamesFunc != nil {
		return m.getMemberNamesFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *mockStudyRepo) ListExpired(ctx context.Context) ([]string, error) {
	if m.listExpiredFunc != nil {
		return m.listExpiredFunc(ctx)
	}
	return nil, nil
}

// existingUser is the default happy-path user lookup.
func existingUser() *mockUserRepo {
	return &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Name: "tester"}, nil
		},
	}
}
