package store

import (
	"testing"

	"github.com/google/uuid"

	"devfolio/internal/models"
)

func TestCategoryStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slug := "test-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, slug) })

	created, err := s.Create(&models.Category{Name: "Test Category", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}

	bySlug, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Errorf("FindBySlug: got %+v", bySlug)
	}

	byID, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Slug != slug {
		t.Errorf("FindByID: got %+v", byID)
	}
}

func TestCategoryStoreDuplicateSlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slug := "test-dup-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, slug) })

	if _, err := s.Create(&models.Category{Name: "First", Slug: slug}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(&models.Category{Name: "Second", Slug: slug}); err == nil {
		t.Error("expected error on duplicate slug")
	}
}

func TestCategoryStoreListCountsProjects(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	projects := NewProjectStore(db)

	slug := "test-count-" + uuid.NewString()[:8]
	title := "Test Counted " + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanProjects(t, db, title)
		cleanCategories(t, db, slug)
	})

	if _, err := s.Create(&models.Category{Name: "Counted", Slug: slug}); err != nil {
		t.Fatalf("Create category: %v", err)
	}
	if _, err := projects.Create(&models.Project{Title: title, Description: "d", Category: slug}); err != nil {
		t.Fatalf("Create project: %v", err)
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, c := range items {
		if c.Slug == slug {
			if c.ProjectCount != 1 {
				t.Errorf("project count: got %d, want 1", c.ProjectCount)
			}
			return
		}
	}
	t.Fatal("created category not found in list")
}

func TestCategoryStoreDeleteLeavesProjects(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	projects := NewProjectStore(db)

	slug := "test-orphan-" + uuid.NewString()[:8]
	title := "Test Orphan " + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanProjects(t, db, title)
		cleanCategories(t, db, slug)
	})

	cat, err := s.Create(&models.Category{Name: "Doomed", Slug: slug})
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	created, err := projects.Create(&models.Project{Title: title, Description: "d", Category: slug})
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}

	if err := s.Delete(cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The project survives with its old slug value.
	found, err := projects.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected project to survive category delete")
	}
	if found.Category != slug {
		t.Errorf("category: got %q, want %q", found.Category, slug)
	}
}
