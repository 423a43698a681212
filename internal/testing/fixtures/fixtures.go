// Package fixtures provides test data factories for integration
// testing.
//
// Each factory method writes rows directly and returns the populated
// model, so tests can assemble users, tags, posts and study groups
// without going through the service layer.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	problem := f.CreateProblem(t, user)
package fixtures

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/model"

	"github.com/google/uuid"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a short random suffix for unique names
func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Name  string
	Point int
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Name: fmt.Sprintf("user_%s", randomID()),
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE user CONTENT {
			name: $name,
			point: $point,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"name":  o.Name,
		"point": o.Point,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	data := extractFirstResult(t, results)
	return &model.User{
		ID:    getString(data, "id"),
		Name:  getString(data, "name"),
		Point: getInt(data, "point"),
	}
}

// ============================================================================
// Tag Fixtures
// ============================================================================

// CreateTag creates a tag with a unique code
func (f *Factory) CreateTag(t *testing.T, code string) *model.Tag {
	t.Helper()

	if code == "" {
		code = fmt.Sprintf("tag_%s", randomID())
	}

	query := `CREATE tag CONTENT { code: $code, name: $name }`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"code": code,
		"name": strings.ToUpper(code),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create tag: %v", err)
	}

	data := extractFirstResult(t, results)
	return &model.Tag{
		ID:   getString(data, "id"),
		Code: getString(data, "code"),
		Name: getString(data, "name"),
	}
}

// ============================================================================
// Post Fixtures
// ============================================================================

// PostOpts customizes post creation
type PostOpts struct {
	Title     string
	MainText  string
	Answer    string
	IsDeleted bool
	Views     int
}

// CreateProblem creates a problem post owned by the given user
func (f *Factory) CreateProblem(t *testing.T, owner *model.User, opts ...func(*PostOpts)) *model.Post {
	return f.createPost(t, owner, model.PostKindProblem, opts...)
}

// CreateInformation creates an information post owned by the given user
func (f *Factory) CreateInformation(t *testing.T, owner *model.User, opts ...func(*PostOpts)) *model.Post {
	return f.createPost(t, owner, model.PostKindInformation, opts...)
}

func (f *Factory) createPost(t *testing.T, owner *model.User, kind model.PostKind, opts ...func(*PostOpts)) *model.Post {
	t.Helper()

	o := &PostOpts{
		Title:    fmt.Sprintf("Post %s", randomID()),
		MainText: "Test post body",
	}
	if kind == model.PostKindProblem {
		o.Answer = "42"
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE post CONTENT {
			kind: $kind,
			title: $title,
			user: type::record($user),
			main_text: $main_text,
			answer: $answer,
			is_deleted: $is_deleted,
			views: $views,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"kind":       string(kind),
		"title":      o.Title,
		"user":       owner.ID,
		"main_text":  o.MainText,
		"answer":     o.Answer,
		"is_deleted": o.IsDeleted,
		"views":      o.Views,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create post: %v", err)
	}

	data := extractFirstResult(t, results)
	return &model.Post{
		ID:        getString(data, "id"),
		Kind:      kind,
		Title:     getString(data, "title"),
		UserID:    owner.ID,
		MainText:  getString(data, "main_text"),
		Answer:    getString(data, "answer"),
		IsDeleted: getBool(data, "is_deleted"),
		Views:     getInt(data, "views"),
	}
}

// TagPost attaches a tag to a post
func (f *Factory) TagPost(t *testing.T, post *model.Post, tag *model.Tag) {
	t.Helper()

	query := `CREATE post_tag CONTENT { post: type::record($post), tag: type::record($tag) }`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"post": post.ID,
		"tag":  tag.ID,
	}); err != nil {
		t.Fatalf("fixtures: failed to tag post: %v", err)
	}
}

// CreateReaction creates a like or dislike row for a (user, post) pair
func (f *Factory) CreateReaction(t *testing.T, user *model.User, post *model.Post, isLike bool) {
	t.Helper()

	query := `
		CREATE like_dislike CONTENT {
			user: type::record($user),
			post: type::record($post),
			is_like: $is_like,
			created_on: time::now()
		}
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"user":    user.ID,
		"post":    post.ID,
		"is_like": isLike,
	}); err != nil {
		t.Fatalf("fixtures: failed to create reaction: %v", err)
	}
}

// ============================================================================
// Solving Fixtures
// ============================================================================

// CreateSolving records a submission for a problem
func (f *Factory) CreateSolving(t *testing.T, user *model.User, problem *model.Post, isRight bool) *model.Solving {
	t.Helper()

	query := `
		CREATE solving CONTENT {
			user: type::record($user),
			problem: type::record($problem),
			is_right: $is_right,
			first_is_right: $is_right,
			created_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"user":     user.ID,
		"problem":  problem.ID,
		"is_right": isRight,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create solving: %v", err)
	}

	data := extractFirstResult(t, results)
	return &model.Solving{
		ID:           getString(data, "id"),
		UserID:       user.ID,
		ProblemID:    problem.ID,
		IsRight:      isRight,
		FirstIsRight: isRight,
	}
}

// ============================================================================
// Study Group Fixtures
// ============================================================================

// StudyOpts customizes study group creation
type StudyOpts struct {
	Title      string
	MainText   string
	SecretText string
	MaxPerson  int
	Place      string
	ExpiredAt  time.Time
}

// CreateStudyGroup creates a study group with the owner as first member
func (f *Factory) CreateStudyGroup(t *testing.T, owner *model.User, opts ...func(*StudyOpts)) *model.StudyGroup {
	t.Helper()

	o := &StudyOpts{
		Title:      fmt.Sprintf("Study %s", randomID()),
		MainText:   "Test study description",
		SecretText: "Members only",
		MaxPerson:  5,
		Place:      "online",
		ExpiredAt:  time.Now().Add(30 * 24 * time.Hour),
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE study_group CONTENT {
			title: $title,
			main_text: $main_text,
			secret_text: $secret_text,
			max_person: $max_person,
			current_person: 1,
			place: $place,
			expired_at: <datetime>$expired_at,
			user: type::record($user),
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"title":       o.Title,
		"main_text":   o.MainText,
		"secret_text": o.SecretText,
		"max_person":  o.MaxPerson,
		"place":       o.Place,
		"expired_at":  o.ExpiredAt.UTC().Format(time.RFC3339),
		"user":        owner.ID,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create study group: %v", err)
	}

	data := extractFirstResult(t, results)
	group := &model.StudyGroup{
		ID:            getString(data, "id"),
		Title:         getString(data, "title"),
		MainText:      getString(data, "main_text"),
		SecretText:    getString(data, "secret_text"),
		MaxPerson:     getInt(data, "max_person"),
		CurrentPerson: getInt(data, "current_person"),
		Place:         getString(data, "place"),
		ExpiredAt:     o.ExpiredAt,
		UserID:        owner.ID,
	}

	f.AddStudyMember(t, group, owner)
	return group
}

// AddStudyMember writes a membership row without touching the counter
func (f *Factory) AddStudyMember(t *testing.T, group *model.StudyGroup, user *model.User) {
	t.Helper()

	query := `
		CREATE user_study CONTENT {
			study_group: type::record($group),
			user: type::record($user),
			created_on: time::now()
		}
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"group": group.ID,
		"user":  user.ID,
	}); err != nil {
		t.Fatalf("fixtures: failed to add study member: %v", err)
	}
}

// TagStudyGroup attaches a tag to a study group
func (f *Factory) TagStudyGroup(t *testing.T, group *model.StudyGroup, tag *model.Tag) {
	t.Helper()

	query := `CREATE study_tag CONTENT { study_group: type::record($group), tag: type::record($tag) }`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"group": group.ID,
		"tag":   tag.ID,
	}); err != nil {
		t.Fatalf("fixtures: failed to tag study group: %v", err)
	}
}

// ============================================================================
// Result Parsing
// ============================================================================

func extractFirstResult(t *testing.T, results []interface{}) map[string]interface{} {
	t.Helper()
	if len(results) == 0 {
		t.Fatal("fixtures: no results returned")
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", results[0])
	}

	result, ok := resp["result"]
	if !ok {
		// Direct record format
		return resp
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			t.Fatal("fixtures: empty result array")
		}
		data, ok := arr[0].(map[string]interface{})
		if !ok {
			t.Fatalf("fixtures: unexpected array item type: %T", arr[0])
		}
		return data
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", result)
	}
	return data
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	// Record ID values come back as {"tb": "post", "id": "xxx"} maps
	if v := data[key]; v != nil {
		if m, ok := v.(map[string]interface{}); ok {
			if tb, ok := m["tb"].(string); ok {
				if id := m["id"]; id != nil {
					return fmt.Sprintf("%s:%v", tb, id)
				}
			}
		}
		s := fmt.Sprintf("%v", v)
		// Convert "{table id}" to "table:id"
		if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
			inner := s[1 : len(s)-1]
			for i, c := range inner {
				if c == ' ' {
					return inner[:i] + ":" + inner[i+1:]
				}
			}
		}
		return s
	}
	return ""
}

func getBool(data map[string]interface{}, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}

func getInt(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}
