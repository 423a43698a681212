package repository

import (
	"context"
	"errors"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"
)

// LikeDislikeRepository handles post reaction data access. A user holds
// at most one reaction per post; the service layer decides between
// create, delete and flip.
type LikeDislikeRepository struct {
	db database.Database
}

// NewLikeDislikeRepository creates a new reaction repository
func NewLikeDislikeRepository(db database.Database) *LikeDislikeRepository {
	return &LikeDislikeRepository{db: db}
}

// GetByUserAndPost retrieves a user's existing reaction on a post, or
// nil when the user has none.
func (r *LikeDislikeRepository) GetByUserAndPost(ctx context.Context, userID, postID string) (*model.LikeDislike, error) {
	query := `
		SELECT * FROM like_dislike
		WHERE user = type::record($user) AND post = type::record($post)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"user": userID,
		"post": postID,
	}

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
	return parseLikeDislike(data), nil
}

// Create records a new reaction
func (r *LikeDislikeRepository) Create(ctx context.Context, userID, postID string, isLike bool) error {
	query := `
		CREATE like_dislike CONTENT {
			user: type::record($user),
			post: type::record($post),
			is_like: $is_like,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user":    userID,
		"post":    postID,
		"is_like": isLike,
	}
	return r.db.Execute(ctx, query, vars)
}

// Delete removes a reaction by ID
func (r *LikeDislikeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

// FlipType inverts an existing reaction in place
func (r *LikeDislikeRepository) FlipType(ctx context.Context, id string, isLike bool) error {
	query := `UPDATE type::record($id) SET is_like = $is_like`
	vars := map[string]interface{}{"id": id, "is_like": isLike}
	return r.db.Execute(ctx, query, vars)
}

// CountByPost returns the like and dislike totals for a post
func (r *LikeDislikeRepository) CountByPost(ctx context.Context, postID string) (likes, dislikes int, err error) {
	query := `
		SELECT is_like, count() AS count FROM like_dislike
		WHERE post = type::record($post)
		GROUP BY is_like
	`
	vars := map[string]interface{}{"post": postID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, 0, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return 0, 0, nil
	}
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		if getBool(data, "is_like") {
			likes = extractCountValue(data["count"])
		} else {
			dislikes = extractCountValue(data["count"])
		}
	}
	return likes, dislikes, nil
}

func parseLikeDislike(data map[string]interface{}) *model.LikeDislike {
	return &model.LikeDislike{
		ID:     getRecordID(data, "id"),
		UserID: getRecordID(data, "user"),
		PostID: getRecordID(data, "post"),
		IsLike: getBool(data, "is_like"),
	}
}
