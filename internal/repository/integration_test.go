package repository

import (
	"testing"

	"github.com/prosn/api/internal/model"
	"github.com/prosn/api/internal/testing/fixtures"
	"github.com/prosn/api/internal/testing/testdb"
)

// These tests run real queries against a SurrealDB instance and are
// skipped unless TEST_DB_HOST is set.

func TestPostRepository_CreateAndGet(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	owner := f.CreateUser(t)
	tag := f.CreateTag(t, "")

	repo := NewPostRepository(tdb.DB)

	created, err := repo.Create(tdb.Ctx(), &model.Post{
		Kind:     model.PostKindProblem,
		Title:    "two sum",
		UserID:   owner.ID,
		MainText: "find the pair",
		Answer:   "map lookup",
	}, []model.Tag{*tag})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated post ID")
	}

	got, err := repo.GetByID(tdb.Ctx(), created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected post, got nil")
	}
	if got.Title != "two sum" || got.Kind != model.PostKindProblem {
		t.Errorf("unexpected post: %+v", got)
	}
	if got.IsDeleted {
		t.Error("new post should not be deleted")
	}

	tagRepo := NewTagRepository(tdb.DB)
	tags, err := tagRepo.GetByPost(tdb.Ctx(), created.ID)
	if err != nil {
		t.Fatalf("GetByPost failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Code != tag.Code {
		t.Errorf("expected tag %s on post, got %+v", tag.Code, tags)
	}
}

func TestPostRepository_SoftDeleteHidesFromList(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	owner := f.CreateUser(t)
	kept := f.CreateProblem(t, owner)
	removed := f.CreateProblem(t, owner)

	repo := NewPostRepository(tdb.DB)
	if err := repo.SoftDelete(tdb.Ctx(), removed.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	summaries, total, err := repo.List(tdb.Ctx(), nil, model.PageRequest{Size: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected total 1, got %d", total)
	}
	if len(summaries) != 1 || summaries[0].ID != kept.ID {
		t.Errorf("expected only %s listed, got %+v", kept.ID, summaries)
	}

	got, err := repo.GetByID(tdb.Ctx(), removed.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || !got.IsDeleted {
		t.Errorf("soft-deleted post should still resolve with is_deleted set, got %+v", got)
	}
}

func TestPostRepository_SearchByTagCode(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	owner := f.CreateUser(t)
	dp := f.CreateTag(t, "dp")
	greedy := f.CreateTag(t, "greedy")

	tagged := f.CreateProblem(t, owner)
	f.TagPost(t, tagged, dp)
	other := f.CreateProblem(t, owner)
	f.TagPost(t, other, greedy)

	repo := NewPostRepository(tdb.DB)
	results, err := repo.Search(tdb.Ctx(), "", "dp")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != tagged.ID {
		t.Errorf("expected only the dp-tagged post, got %+v", results)
	}
}

func TestSolvingRepository_CountByProblem(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	owner := f.CreateUser(t)
	problem := f.CreateProblem(t, owner)

	f.CreateSolving(t, f.CreateUser(t), problem, true)
	f.CreateSolving(t, f.CreateUser(t), problem, true)
	f.CreateSolving(t, f.CreateUser(t), problem, false)

	repo := NewSolvingRepository(tdb.DB)
	submits, firstRights, err := repo.CountByProblem(tdb.Ctx(), problem.ID)
	if err != nil {
		t.Fatalf("CountByProblem failed: %v", err)
	}
	if submits != 3 {
		t.Errorf("expected 3 submissions, got %d", submits)
	}
	if firstRights != 2 {
		t.Errorf("expected 2 first-try successes, got %d", firstRights)
	}
}

func TestStudyRepository_MembershipLifecycle(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	owner := f.CreateUser(t)
	joiner := f.CreateUser(t)
	group := f.CreateStudyGroup(t, owner)

	repo := NewStudyRepository(tdb.DB)

	isMember, err := repo.IsMember(tdb.Ctx(), group.ID, joiner.ID)
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if isMember {
		t.Fatal("joiner should not be a member yet")
	}

	if err := repo.AddMember(tdb.Ctx(), group.ID, joiner.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	isMember, err = repo.IsMember(tdb.Ctx(), group.ID, joiner.ID)
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if !isMember {
		t.Fatal("joiner should be a member after AddMember")
	}

	got, err := repo.GetByID(tdb.Ctx(), group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CurrentPerson != 2 {
		t.Errorf("expected current_person 2 after join, got %d", got.CurrentPerson)
	}

	names, err := repo.GetMemberNames(tdb.Ctx(), group.ID)
	if err != nil {
		t.Fatalf("GetMemberNames failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 member names, got %v", names)
	}

	if err := repo.RemoveMember(tdb.Ctx(), group.ID, joiner.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	got, err = repo.GetByID(tdb.Ctx(), group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CurrentPerson != 1 {
		t.Errorf("expected current_person back to 1 after leave, got %d", got.CurrentPerson)
	}
}
