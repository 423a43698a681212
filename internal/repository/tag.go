package repository

import (
	"context"
	"errors"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"
)

// TagRepository handles tag reference data and the tag association reads
// for posts and study groups.
type TagRepository struct {
	db database.Database
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db database.Database) *TagRepository {
	return &TagRepository{db: db}
}

// GetAll retrieves the full tag vocabulary
func (r *TagRepository) GetAll(ctx context.Context) ([]model.Tag, error) {
	query := `SELECT * FROM tag ORDER BY code`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseTagList(result), nil
}

// GetByCode retrieves a tag by its unique code
func (r *TagRepository) GetByCode(ctx context.Context, code string) (*model.Tag, error) {
	query := `SELECT * FROM tag WHERE code = $code LIMIT 1`
	vars := map[string]interface{}{"code": code}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := extractRecord(result)
	if !ok || data["id"] == nil {
		return nil, nil
	}
	tag := parseTag(data)
	return &tag, nil
}

// GetByPost retrieves the tags attached to a post
func (r *TagRepository) GetByPost(ctx context.Context, postID string) ([]model.Tag, error) {
	query := `
		SELECT tag.id AS id, tag.code AS code, tag.name AS name
		FROM post_tag
		WHERE post = type::record($post)
	`
	vars := map[string]interface{}{"post": postID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseTagList(result), nil
}

// GetByStudyGroup retrieves the tags attached to a study group
func (r *TagRepository) GetByStudyGroup(ctx context.Context, groupID string) ([]model.Tag, error) {
	query := `
		SELECT tag.id AS id, tag.code AS code, tag.name AS name
		FROM study_tag
		WHERE study_group = type::record($group)
	`
	vars := map[string]interface{}{"group": groupID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseTagList(result), nil
}

func parseTag(data map[string]interface{}) model.Tag {
	return model.Tag{
		ID:   getRecordID(data, "id"),
		Code: getString(data, "code"),
		Name: getString(data, "name"),
	}
}

func parseTagList(result []interface{}) []model.Tag {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []model.Tag{}
	}

	tags := make([]model.Tag, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			tags = append(tags, parseTag(data))
		}
	}
	return tags
}
