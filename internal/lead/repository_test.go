package lead

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/didzisbondars-dot/officebase/internal/db"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "officebase.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return NewRepository(database)
}

func TestInsertAssignsIdentity(t *testing.T) {
	repo := testRepo(t)

	saved, err := repo.Insert(Lead{Name: "Anna Ozola", Email: "anna@example.com", ProjectID: "rec1"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected a generated id")
	}
	if saved.SubmittedAt.IsZero() {
		t.Error("expected a submission time")
	}
}

func TestInsertAndList(t *testing.T) {
	repo := testRepo(t)

	size := 450.0
	first, err := repo.Insert(Lead{
		Name: "Anna Ozola", Email: "anna@example.com",
		ProjectID: "rec1", ProjectName: "Riverside One",
		UnitSize:    &size,
		SubmittedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = repo.Insert(Lead{
		Name: "Janis Berzins", Email: "janis@example.com",
		SubmittedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	leads, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("leads = %d, want 2", len(leads))
	}
	if leads[0].Name != "Janis Berzins" {
		t.Errorf("first = %q, want newest first", leads[0].Name)
	}
	if leads[1].ID != first.ID {
		t.Errorf("second id = %q, want %q", leads[1].ID, first.ID)
	}
	if leads[1].UnitSize == nil || *leads[1].UnitSize != 450 {
		t.Errorf("unitSize = %v, want 450", leads[1].UnitSize)
	}
	if leads[0].UnitSize != nil {
		t.Errorf("unitSize = %v, want nil when not provided", *leads[0].UnitSize)
	}
}
