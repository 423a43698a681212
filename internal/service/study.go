package service

import (
	"context"
	"fmt"

	"github.com/prosn/api/internal/model"
)

// StudyRepository defines the interface for study group storage
type StudyRepository interface {
	Create(ctx context.Context, group *model.StudyGroup, tags []model.Tag) (*model.StudyGroup, error)
	GetByID(ctx context.Context, id string) (*model.StudyGroup, error)
	UpdateWithTags(ctx context.Context, group *model.StudyGroup, tags []model.Tag, clearTags bool) error
	DeleteCascade(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	GetMemberNames(ctx context.Context, groupID string) ([]string, error)
	ListExpired(ctx context.Context) ([]string, error)
}

// StudyUserRepository defines the interface for member lookups
type StudyUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// StudyTagRepository defines the interface for tag resolution and reads
type StudyTagRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Tag, error)
	GetByStudyGroup(ctx context.Context, groupID string) ([]model.Tag, error)
}

// StudyService handles study group business logic
type StudyService struct {
	repo     StudyRepository
	userRepo StudyUserRepository
	tagRepo  StudyTagRepository
}

// StudyServiceConfig holds configuration for the study service
type StudyServiceConfig struct {
	StudyRepo StudyRepository
	UserRepo  StudyUserRepository
	TagRepo   StudyTagRepository
}

// NewStudyService creates a new study service
func NewStudyService(cfg StudyServiceConfig) *StudyService {
	return &StudyService{
		repo:     cfg.StudyRepo,
		userRepo: cfg.UserRepo,
		tagRepo:  cfg.TagRepo,
	}
}

// Create opens a new study group. The creator becomes the owner and
// first member, and the group, membership and tag rows are written
// together.
func (s *StudyService) Create(ctx context.Context, userID string, req *model.StudyGroupRequest) (*model.StudyGroup, error) {
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

	group := &model.StudyGroup{
		Title:      req.Title,
		MainText:   req.MainText,
		SecretText: req.SecretText,
		MaxPerson:  req.MaxPerson,
		Place:      req.Place,
		ExpiredAt:  req.ExpiredAt,
		UserID:     userID,
	}

	created, err := s.repo.Create(ctx, group, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to create study group: %w", err)
	}
	return created, nil
}

// Update rewrites a study group's fields and replaces its tag set
// wholesale. Only the owner may update.
func (s *StudyService) Update(ctx context.Context, groupID, userID string, req *model.StudyGroupRequest) error {
	if errs := req.Validate(); len(errs) > 0 {
		return model.NewValidationError(errs)
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to get study group: %w", err)
	}
	if group == nil {
		return ErrStudyGroupNotFound
	}
	if group.UserID != userID {
		return ErrNotStudyOwner
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return err
	}
	existingTags, err := s.tagRepo.GetByStudyGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to get study tags: %w", err)
	}

	group.Title = req.Title
	group.MainText = req.MainText
	group.SecretText = req.SecretText
	group.MaxPerson = req.MaxPerson
	group.Place = req.Place
	group.ExpiredAt = req.ExpiredAt

	if err := s.repo.UpdateWithTags(ctx, group, tags, len(existingTags) > 0); err != nil {
		return fmt.Errorf("failed to update study group: %w", err)
	}
	return nil
}

// Delete removes a study group with its memberships and tag rows. Only
// the owner may delete.
func (s *StudyService) Delete(ctx context.Context, groupID, userID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to get study group: %w", err)
	}
	if group == nil {
		return ErrStudyGroupNotFound
	}
	if group.UserID != userID {
		return ErrNotStudyOwner
	}
	return s.repo.DeleteCascade(ctx, groupID)
}

// Join adds a user to a study group. Joining twice or joining a full
// group fails without touching the membership.
func (s *StudyService) Join(ctx context.Context, userID, groupID string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to get study group: %w", err)
	}
	if group == nil {
		return ErrStudyGroupNotFound
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return ErrAlreadyStudyMember
	}
	if group.CurrentPerson >= group.MaxPerson {
		return ErrStudyFull
	}

	return s.repo.AddMember(ctx, groupID, userID)
}

// Leave removes a user from a study group
func (s *StudyService) Leave(ctx context.Context, userID, groupID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to get study group: %w", err)
	}
	if group == nil {
		return ErrStudyGroupNotFound
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotStudyMember
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}

// GetStudyGroup returns the group view for a requesting user. Members
// see the secret text and the member roster; everyone else gets the
// public fields only.
func (s *StudyService) GetStudyGroup(ctx context.Context, userID, groupID string) (*model.StudyGroupDetail, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study group: %w", err)
	}
	if group == nil {
		return nil, ErrStudyGroupNotFound
	}

	tags, err := s.tagRepo.GetByStudyGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study tags: %w", err)
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	detail := &model.StudyGroupDetail{
		ID:            group.ID,
		Title:         group.Title,
		MainText:      group.MainText,
		MaxPerson:     group.MaxPerson,
		CurrentPerson: group.CurrentPerson,
		Place:         group.Place,
		ExpiredAt:     group.ExpiredAt,
		Tags:          tags,
		IsMember:      isMember,
	}
	if isMember {
		members, err := s.repo.GetMemberNames(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("failed to get members: %w", err)
		}
		detail.SecretText = group.SecretText
		detail.Members = members
	}
	return detail, nil
}

// SweepExpired deletes every study group whose expiry date has passed,
// cascading memberships and tags the same way Delete does. Returns the
// number of groups removed.
func (s *StudyService) SweepExpired(ctx context.Context) (int, error) {
	ids, err := s.repo.ListExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired study groups: %w", err)
	}

	removed := 0
	for _, id := range ids {
		if err := s.repo.DeleteCascade(ctx, id); err != nil {
			return removed, fmt.Errorf("failed to delete expired study group %s: %w", id, err)
		}
		removed++
	}
	return removed, nil
}

func (s *StudyService) requireUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// resolveTags maps tag codes to tag rows, failing the whole call on the
// first unknown code.
func (s *StudyService) resolveTags(ctx context.Context, codes []string) ([]model.Tag, error) {
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
