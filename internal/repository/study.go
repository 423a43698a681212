package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"
)

// StudyRepository handles study group data access: the group rows, the
// user_study membership rows and the study_tag association rows.
type StudyRepository struct {
	db database.Database
}

// NewStudyRepository creates a new study repository
func NewStudyRepository(db database.Database) *StudyRepository {
	return &StudyRepository{db: db}
}

// Create persists a study group, the owner's membership row and one
// study_tag row per resolved tag in a single transaction. The owner
// counts toward capacity, so current_person starts at 1.
func (r *StudyRepository) Create(ctx context.Context, group *model.StudyGroup, tags []model.Tag) (*model.StudyGroup, error) {
	tb := database.NewTxBuilder()

	tb.Add(`
		LET $created = (CREATE study_group CONTENT {
			title: $title,
			main_text: $main_text,
			secret_text: $secret_text,
			max_person: $max_person,
			current_person: 1,
			place: $place,
			expired_at: $expired_at,
			user: type::record($user),
			created_on: time::now(),
			updated_on: time::now()
		})
	`, map[string]interface{}{
		"title":       group.Title,
		"main_text":   group.MainText,
		"secret_text": group.SecretText,
		"max_person":  group.MaxPerson,
		"place":       group.Place,
		"expired_at":  group.ExpiredAt,
		"user":        group.UserID,
	})

	tb.Add(`
		CREATE user_study CONTENT {
			user: type::record($user),
			study_group: $created[0].id,
			created_on: time::now()
		}
	`, map[string]interface{}{"user": group.UserID})

	for _, tag := range tags {
		tb.Add(`CREATE study_tag CONTENT { study_group: $created[0].id, tag: type::record($tag) }`,
			map[string]interface{}{"tag": tag.ID})
	}

	tb.Add(`RETURN $created[0]`, nil)

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		return nil, err
	}

	data, ok := lastCreatedRecord(results)
	if !ok {
		return nil, fmt.Errorf("%w: study group create returned no record", database.ErrQuery)
	}
	return parseStudyGroup(data), nil
}

// GetByID retrieves a study group by ID
func (r *StudyRepository) GetByID(ctx context.Context, id string) (*model.StudyGroup, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

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
	return parseStudyGroup(data), nil
}

// UpdateWithTags rewrites a study group's editable fields and swaps its
// tag rows for the given set, all in one transaction. clearTags skips
// the tag delete statement when the caller knows no rows exist yet.
func (r *StudyRepository) UpdateWithTags(ctx context.Context, group *model.StudyGroup, tags []model.Tag, clearTags bool) error {
	batch := database.NewAtomicBatch()

	batch.Add(`
		UPDATE type::record($id) SET
			title = $title,
			main_text = $main_text,
			secret_text = $secret_text,
			max_person = $max_person,
			place = $place,
			expired_at = $expired_at,
			updated_on = time::now()
	`, map[string]interface{}{
		"id":          group.ID,
		"title":       group.Title,
		"main_text":   group.MainText,
		"secret_text": group.SecretText,
		"max_person":  group.MaxPerson,
		"place":       group.Place,
		"expired_at":  group.ExpiredAt,
	})

	if clearTags {
		batch.Add(`DELETE study_tag WHERE study_group = type::record($group)`,
			map[string]interface{}{"group": group.ID})
	}
	for _, tag := range tags {
		batch.Add(`
			CREATE study_tag CONTENT {
				study_group: type::record($group),
				tag: type::record($tag)
			}
		`, map[string]interface{}{
			"group": group.ID,
			"tag":   tag.ID,
		})
	}

	return batch.Execute(ctx, r.db)
}

// DeleteCascade removes a study group together with its membership and
// tag rows, in that order, in one transaction.
func (r *StudyRepository) DeleteCascade(ctx context.Context, groupID string) error {
	batch := database.NewAtomicBatch()

	batch.Add(`DELETE user_study WHERE study_group = type::record($group)`,
		map[string]interface{}{"group": groupID})
	batch.Add(`DELETE study_tag WHERE study_group = type::record($group)`,
		map[string]interface{}{"group": groupID})
	batch.Add(`DELETE type::record($group)`,
		map[string]interface{}{"group": groupID})

	return batch.Execute(ctx, r.db)
}

// AddMember inserts a membership row and bumps the occupancy counter
// atomically.
func (r *StudyRepository) AddMember(ctx context.Context, groupID, userID string) error {
	batch := database.NewAtomicBatch()

	batch.Add(`
		CREATE user_study CONTENT {
			user: type::record($user),
			study_group: type::record($group),
			created_on: time::now()
		}
	`, map[string]interface{}{
		"user":  userID,
		"group": groupID,
	})
	batch.Add(`UPDATE type::record($group) SET current_person += 1, updated_on = time::now()`,
		map[string]interface{}{"group": groupID})

	return batch.Execute(ctx, r.db)
}

// RemoveMember deletes a membership row and drops the occupancy counter
// atomically.
func (r *StudyRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	batch := database.NewAtomicBatch()

	batch.Add(`
		DELETE user_study
		WHERE user = type::record($user) AND study_group = type::record($group)
	`, map[string]interface{}{
		"user":  userID,
		"group": groupID,
	})
	batch.Add(`UPDATE type::record($group) SET current_person -= 1, updated_on = time::now()`,
		map[string]interface{}{"group": groupID})

	return batch.Execute(ctx, r.db)
}

// IsMember reports whether a user has a membership row for a group
func (r *StudyRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		SELECT count() FROM user_study
		WHERE user = type::record($user) AND study_group = type::record($group)
		GROUP ALL
	`
	vars := map[string]interface{}{
		"user":  userID,
		"group": groupID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return extractCount(result) > 0, nil
}

// GetMemberNames retrieves the display names of a group's members,
// oldest membership first.
func (r *StudyRepository) GetMemberNames(ctx context.Context, groupID string) ([]string, error) {
	query := `
		SELECT user.name AS name FROM user_study
		WHERE study_group = type::record($group)
		ORDER BY created_on
	`
	vars := map[string]interface{}{"group": groupID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			names = append(names, getString(data, "name"))
		}
	}
	return names, nil
}

// ListExpired retrieves the IDs of study groups whose expiry date has
// passed, for the background sweeper.
func (r *StudyRepository) ListExpired(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM study_group WHERE expired_at != NONE AND expired_at < time::now()`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			if id := getRecordID(data, "id"); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func parseStudyGroup(data map[string]interface{}) *model.StudyGroup {
	return &model.StudyGroup{
		ID:            getRecordID(data, "id"),
		Title:         getString(data, "title"),
		MainText:      getString(data, "main_text"),
		SecretText:    getString(data, "secret_text"),
		MaxPerson:     getInt(data, "max_person"),
		CurrentPerson: getInt(data, "current_person"),
		Place:         getString(data, "place"),
		ExpiredAt:     getTime(data, "expired_at"),
		UserID:        getRecordID(data, "user"),
		CreatedOn:     getTime(data, "created_on"),
		UpdatedOn:     getTime(data, "updated_on"),
	}
}
