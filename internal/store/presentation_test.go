package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"deckgen/internal/models"
	"deckgen/internal/theme"
)

func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	u, err := NewUserStore(db).Create(uuid.NewString()+"@example.com", "pw", "Owner", "user")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

func TestPresentationCreateDefaults(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)
	presentations := NewPresentationStore(db)

	p, err := presentations.Create(owner.ID, "Go Concurrency", "patterns and pitfalls", 8, theme.Default())
	if err != nil {
		t.Fatalf("create presentation: %v", err)
	}
	if p.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}
	if p.Theme.Fonts.TitleFont != theme.Default().Fonts.TitleFont {
		t.Errorf("theme not round-tripped: %+v", p.Theme)
	}

	found, err := presentations.FindByID(p.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found == nil || found.Topic != "Go Concurrency" || found.NumSlides != 8 {
		t.Fatalf("find by id returned %+v", found)
	}
}

func TestPresentationFindMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	presentations := NewPresentationStore(db)

	p, err := presentations.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for unknown id, got %+v", p)
	}
}

func TestPresentationListByUserIsScoped(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db)
	bob := testUser(t, db)
	presentations := NewPresentationStore(db)

	if _, err := presentations.Create(alice.ID, "A", "", 3, theme.Default()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := presentations.Create(alice.ID, "B", "", 3, theme.Default()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := presentations.Create(bob.ID, "C", "", 3, theme.Default()); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := presentations.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	for _, p := range list {
		if p.UserID != alice.ID {
			t.Errorf("foreign presentation leaked into listing: %+v", p)
		}
	}
}

func TestPresentationStatusLifecycle(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)
	presentations := NewPresentationStore(db)

	p, err := presentations.Create(owner.ID, "Lifecycle", "", 4, theme.Default())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	started, err := presentations.TryStart(p.ID)
	if err != nil {
		t.Fatalf("try start: %v", err)
	}
	if !started {
		t.Fatal("pending presentation should be claimable")
	}

	// A second claim must lose the race.
	again, err := presentations.TryStart(p.ID)
	if err != nil {
		t.Fatalf("try start: %v", err)
	}
	if again {
		t.Error("in-progress presentation claimed twice")
	}

	if err := presentations.MarkCompleted(p.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	found, _ := presentations.FindByID(p.ID)
	if found.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", found.Status)
	}

	// Terminal states are not claimable without a reset.
	claimed, err := presentations.TryStart(p.ID)
	if err != nil {
		t.Fatalf("try start: %v", err)
	}
	if claimed {
		t.Error("completed presentation should not be claimable")
	}

	if err := presentations.ResetPending(p.ID); err != nil {
		t.Fatalf("reset pending: %v", err)
	}
	claimed, err = presentations.TryStart(p.ID)
	if err != nil {
		t.Fatalf("try start: %v", err)
	}
	if !claimed {
		t.Error("reset presentation should be claimable again")
	}
	if err := presentations.MarkFailed(p.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	found, _ = presentations.FindByID(p.ID)
	if found.Status != models.StatusFailed {
		t.Errorf("status = %s, want failed", found.Status)
	}
}

func TestPresentationMarkCompletedRequiresInProgress(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)
	presentations := NewPresentationStore(db)

	p, err := presentations.Create(owner.ID, "Still pending", "", 4, theme.Default())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := presentations.MarkCompleted(p.ID); err == nil {
		t.Error("completing a pending presentation should fail")
	}
}

func TestPresentationUpdate(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)
	presentations := NewPresentationStore(db)

	p, err := presentations.Create(owner.ID, "Old", "old desc", 4, theme.Default())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	th := theme.Default()
	th.Fonts.TitleFont = "Arial"
	updated, err := presentations.Update(p.ID, "New", "new desc", 6, th)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Topic != "New" || updated.NumSlides != 6 || updated.Theme.Fonts.TitleFont != "Arial" {
		t.Fatalf("update not persisted: %+v", updated)
	}

	missing, err := presentations.Update(uuid.New(), "X", "", 3, theme.Default())
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v", missing)
	}
}
