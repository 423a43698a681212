package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"
)

// SolvingRepository handles solve record data access. Writes that award
// points run the solving statement and the point update in one
// transaction so a failed award never leaves a half-applied result.
type SolvingRepository struct {
	db database.Database
}

// NewSolvingRepository creates a new solving repository
func NewSolvingRepository(db database.Database) *SolvingRepository {
	return &SolvingRepository{db: db}
}

// GetByUserAndProblem retrieves a user's solve record for a problem, or
// nil when the user has not submitted yet.
func (r *SolvingRepository) GetByUserAndProblem(ctx context.Context, userID, problemID string) (*model.Solving, error) {
	query := `
		SELECT * FROM solving
		WHERE user = type::record($user) AND problem = type::record($problem)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"user":    userID,
		"problem": problemID,
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
	return parseSolving(data), nil
}

// Create persists a new solve record. When points is positive the
// user's balance is bumped in the same transaction.
func (r *SolvingRepository) Create(ctx context.Context, solving *model.Solving, points int) (*model.Solving, error) {
	tb := database.NewTxBuilder()

	tb.Add(`
		LET $created = (CREATE solving CONTENT {
			user: type::record($user),
			problem: type::record($problem),
			is_right: $is_right,
			first_is_right: $first_is_right,
			created_on: time::now()
		})
	`, map[string]interface{}{
		"user":           solving.UserID,
		"problem":        solving.ProblemID,
		"is_right":       solving.IsRight,
		"first_is_right": solving.FirstIsRight,
	})

	if points > 0 {
		tb.Add(`UPDATE type::record($user) SET point += $points, updated_on = time::now()`,
			map[string]interface{}{
				"user":   solving.UserID,
				"points": points,
			})
	}

	tb.Add(`RETURN $created[0]`, nil)

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		return nil, err
	}

	data, ok := lastCreatedRecord(results)
	if !ok {
		return nil, fmt.Errorf("%w: solving create returned no record", database.ErrQuery)
	}
	return parseSolving(data), nil
}

// MarkCorrect flips an existing wrong record to correct and awards the
// points atomically. first_is_right stays untouched.
func (r *SolvingRepository) MarkCorrect(ctx context.Context, solvingID, userID string, points int) error {
	batch := database.NewAtomicBatch()

	batch.Add(`UPDATE type::record($id) SET is_right = true`,
		map[string]interface{}{"id": solvingID})
	batch.Add(`UPDATE type::record($user) SET point += $points, updated_on = time::now()`,
		map[string]interface{}{
			"user":   userID,
			"points": points,
		})

	return batch.Execute(ctx, r.db)
}

// ListByUser retrieves a user's solve records with the problem titles,
// newest first. Tags are attached by the service layer.
func (r *SolvingRepository) ListByUser(ctx context.Context, userID string) ([]model.SolvingSummary, error) {
	query := `
		SELECT
			id,
			problem AS problem,
			problem.title AS title,
			is_right
		FROM solving
		WHERE user = type::record($user)
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []model.SolvingSummary{}, nil
	}

	summaries := make([]model.SolvingSummary, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		summaries = append(summaries, model.SolvingSummary{
			ID:        getRecordID(data, "id"),
			ProblemID: getRecordID(data, "problem"),
			Title:     getString(data, "title"),
			IsRight:   getBool(data, "is_right"),
		})
	}
	return summaries, nil
}

// CountByProblem returns the total submission count and the count of
// submissions that were correct on the first try.
func (r *SolvingRepository) CountByProblem(ctx context.Context, problemID string) (submits, firstRights int, err error) {
	query := `
		SELECT first_is_right, count() AS count FROM solving
		WHERE problem = type::record($problem)
		GROUP BY first_is_right
	`
	vars := map[string]interface{}{"problem": problemID}

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
		count := extractCountValue(data["count"])
		submits += count
		if getBool(data, "first_is_right") {
			firstRights = count
		}
	}
	return submits, firstRights, nil
}

func parseSolving(data map[string]interface{}) *model.Solving {
	return &model.Solving{
		ID:           getRecordID(data, "id"),
		UserID:       getRecordID(data, "user"),
		ProblemID:    getRecordID(data, "problem"),
		IsRight:      getBool(data, "is_right"),
		FirstIsRight: getBool(data, "first_is_right"),
		CreatedOn:    getTime(data, "created_on"),
	}
}
