package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"
)

// PostRepository handles post data access, including the post_tag
// association rows that are written together with the post.
type PostRepository struct {
	db database.Database
}

// NewPostRepository creates a new post repository
func NewPostRepository(db database.Database) *PostRepository {
	return &PostRepository{db: db}
}

// Create persists a post and one post_tag row per resolved tag in a
// single transaction. The returned post carries the generated ID.
func (r *PostRepository) Create(ctx context.Context, post *model.Post, tags []model.Tag) (*model.Post, error) {
	tb := database.NewTxBuilder()

	tb.Add(`
		LET $created = (CREATE post CONTENT {
			kind: $kind,
			title: $title,
			user: type::record($user),
			main_text: $main_text,
			answer: $answer,
			example1: $example1,
			example2: $example2,
			example3: $example3,
			example4: $example4,
			is_deleted: false,
			views: 0,
			created_on: time::now(),
			updated_on: time::now()
		})
	`, map[string]interface{}{
		"kind":      string(post.Kind),
		"title":     post.Title,
		"user":      post.UserID,
		"main_text": post.MainText,
		"answer":    post.Answer,
		"example1":  post.Example1,
		"example2":  post.Example2,
		"example3":  post.Example3,
		"example4":  post.Example4,
	})

	for _, tag := range tags {
		tb.Add(`CREATE post_tag CONTENT { post: $created[0].id, tag: type::record($tag) }`,
			map[string]interface{}{"tag": tag.ID})
	}

	tb.Add(`RETURN $created[0]`, nil)

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		return nil, err
	}

	data, ok := lastCreatedRecord(results)
	if !ok {
		return nil, fmt.Errorf("%w: post create returned no record", database.ErrQuery)
	}

	created := parsePost(data)
	return created, nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
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
	return parsePost(data), nil
}

// SoftDelete marks a post deleted without removing the row
func (r *PostRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET is_deleted = true, updated_on = time::now()`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

// IncrementViews bumps the view counter
func (r *PostRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET views += 1`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

// List retrieves a page of non-deleted posts, newest first. A nil kind
// lists every variant.
func (r *PostRepository) List(ctx context.Context, kind *model.PostKind, page model.PageRequest) ([]model.PostSummary, int, error) {
	filter := `is_deleted = false`
	vars := map[string]interface{}{
		"limit": page.Size,
		"start": page.Offset(),
	}
	if kind != nil {
		filter += ` AND kind = $kind`
		vars["kind"] = string(*kind)
	}

	query := `
		SELECT *, user.name AS user_name FROM post
		WHERE ` + filter + `
		ORDER BY created_on DESC
		LIMIT $limit START $start
	`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT count() FROM post WHERE ` + filter + ` GROUP ALL`
	countResult, err := r.db.QueryOne(ctx, countQuery, vars)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, 0, err
	}

	return parsePostSummaryList(result), extractCount(countResult), nil
}

// Search finds posts through their tag associations by title substring
// and/or tag code. Empty criteria are not applied. A post tagged with
// several matching tags yields one row per association; the service
// layer de-duplicates.
func (r *PostRepository) Search(ctx context.Context, title, code string) ([]model.PostSummary, error) {
	query := `
		SELECT
			post.id AS id,
			post.kind AS kind,
			post.title AS title,
			post.views AS views,
			post.user AS user,
			post.user.name AS user_name
		FROM post_tag
		WHERE post.is_deleted = false
			AND ($title = '' OR post.title CONTAINS $title)
			AND ($code = '' OR tag.code = $code)
	`
	vars := map[string]interface{}{
		"title": title,
		"code":  code,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parsePostSummaryList(result), nil
}

func parsePost(data map[string]interface{}) *model.Post {
	return &model.Post{
		ID:        getRecordID(data, "id"),
		Kind:      model.PostKind(getString(data, "kind")),
		Title:     getString(data, "title"),
		UserID:    getRecordID(data, "user"),
		MainText:  getString(data, "main_text"),
		Answer:    getString(data, "answer"),
		Example1:  getString(data, "example1"),
		Example2:  getString(data, "example2"),
		Example3:  getString(data, "example3"),
		Example4:  getString(data, "example4"),
		IsDeleted: getBool(data, "is_deleted"),
		Views:     getInt(data, "views"),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}
}

func parsePostSummary(data map[string]interface{}) model.PostSummary {
	return model.PostSummary{
		ID:    getRecordID(data, "id"),
		Kind:  model.PostKind(getString(data, "kind")),
		Title: getString(data, "title"),
		User: model.UserSummary{
			ID:   getRecordID(data, "user"),
			Name: getString(data, "user_name"),
		},
		Views: getInt(data, "views"),
	}
}

func parsePostSummaryList(result []interface{}) []model.PostSummary {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []model.PostSummary{}
	}

	summaries := make([]model.PostSummary, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			summaries = append(summaries, parsePostSummary(data))
		}
	}
	return summaries
}
