package catalog

import (
	"testing"

	"github.com/stylesphere/storefront/internal/domain"
)

func TestBuildCategoryTree(t *testing.T) {
	t.Run("nests children under parents", func(t *testing.T) {
		roots := buildCategoryTree([]domain.Category{
			{ID: "men", Name: "Men"},
			{ID: "men-shirts", Name: "Shirts", ParentID: "men"},
			{ID: "men-shoes", Name: "Shoes", ParentID: "men"},
			{ID: "women", Name: "Women"},
		})

		if len(roots) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(roots))
		}
		if roots[0].ID != "men" || len(roots[0].Children) != 2 {
			t.Errorf("expected men with 2 children, got %s with %d", roots[0].ID, len(roots[0].Children))
		}
		if roots[1].ID != "women" || len(roots[1].Children) != 0 {
			t.Errorf("expected women with no children, got %s with %d", roots[1].ID, len(roots[1].Children))
		}
	})

	t.Run("orphaned parent id becomes a root", func(t *testing.T) {
		roots := buildCategoryTree([]domain.Category{
			{ID: "shirts", Name: "Shirts", ParentID: "deleted-category"},
		})

		if len(roots) != 1 || roots[0].ID != "shirts" {
			t.Fatalf("expected orphan promoted to root, got %+v", roots)
		}
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		roots := buildCategoryTree(nil)
		if roots == nil || len(roots) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", roots)
		}
	})

	t.Run("self-referencing category is a root", func(t *testing.T) {
		roots := buildCategoryTree([]domain.Category{
			{ID: "loop", Name: "Loop", ParentID: "loop"},
		})

		if len(roots) != 1 {
			t.Fatalf("expected 1 root, got %d", len(roots))
		}
	})
}
