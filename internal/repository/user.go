package repository

import (
	"context"
	"errors"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
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
	return parseUser(data), nil
}

// AddPoints increments a user's point balance. Point awards that must be
// atomic with a solving write go through SolvingRepository instead.
func (r *UserRepository) AddPoints(ctx context.Context, id string, points int) error {
	query := `UPDATE type::record($id) SET point += $points, updated_on = time::now()`
	vars := map[string]interface{}{"id": id, "points": points}
	return r.db.Execute(ctx, query, vars)
}

func parseUser(data map[string]interface{}) *model.User {
	return &model.User{
		ID:        getRecordID(data, "id"),
		Name:      getString(data, "name"),
		Point:     getInt(data, "point"),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}
}
