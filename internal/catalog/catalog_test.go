package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"vanity/internal/model"
)

var testProducts = []model.Product{
	{ID: 1, Name: "Revitalift Serum", Brand: "L'Oréal Paris", Category: "skincare"},
	{ID: 2, Name: "Elvive Shampoo", Brand: "L'Oréal Paris", Category: "haircare"},
	{ID: 3, Name: "True Match Foundation", Brand: "L'Oréal Paris", Category: "makeup"},
	{ID: 4, Name: "Hydra Genius Moisturizer", Brand: "L'Oréal Paris", Category: "skincare"},
	{ID: 5, Name: "Barber Club Beard Oil", Brand: "L'Oréal Men Expert", Category: "men's grooming"},
}

// --- Load ---

func TestLoad_WhenFileValid_ShouldReturnProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	doc := `{"products":[{"id":1,"name":"Revitalift Serum","brand":"L'Oréal","category":"skincare","image":"https://example.com/1.jpg"}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	products, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Revitalift Serum" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestLoad_WhenFileMissing_ShouldFailClosed(t *testing.T) {
	products, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog on failure, got %d products", len(products))
	}
}

func TestLoad_WhenFileMalformed_ShouldFailClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	products, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed file")
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(products))
	}
}

// --- Index ---

func TestIndexByID_WhenPresent_ShouldReturnProduct(t *testing.T) {
	x := NewIndex(testProducts)
	p, ok := x.ByID(2)
	if !ok || p.Name != "Elvive Shampoo" {
		t.Errorf("expected Elvive Shampoo, got %+v (ok=%v)", p, ok)
	}
}

func TestIndexByID_WhenAbsent_ShouldReportMissing(t *testing.T) {
	x := NewIndex(testProducts)
	if _, ok := x.ByID(999); ok {
		t.Error("expected id 999 to be absent")
	}
}

func TestIndexCategories_ShouldReturnDistinctInFirstSeenOrder(t *testing.T) {
	x := NewIndex(testProducts)
	got := x.Categories()
	expected := []string{"skincare", "haircare", "makeup", "men's grooming"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("category %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

// --- Filter ---

func TestFilter_WhenNoInputs_ShouldReturnEverything(t *testing.T) {
	got := Filter(testProducts, "", "")
	if len(got) != len(testProducts) {
		t.Errorf("expected %d products, got %d", len(testProducts), len(got))
	}
}

func TestFilter_WhenSearchingShampoo_ShouldReturnOnlyElvive(t *testing.T) {
	got := Filter(testProducts, "shampoo", "")
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only id 2, got %+v", got)
	}
}

func TestFilter_ShouldMatchCaseInsensitively(t *testing.T) {
	got := Filter(testProducts, "REVITALIFT", "")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected id 1 for uppercase term, got %+v", got)
	}
}

func TestFilter_ShouldMatchAgainstBrand(t *testing.T) {
	got := Filter(testProducts, "men expert", "")
	if len(got) != 1 || got[0].ID != 5 {
		t.Errorf("expected id 5 for brand match, got %+v", got)
	}
}

func TestFilter_ShouldMatchAgainstCategory(t *testing.T) {
	got := Filter(testProducts, "haircare", "")
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected id 2 for category term match, got %+v", got)
	}
}

func TestFilter_WhenCategoryGiven_ShouldRequireExactMatch(t *testing.T) {
	got := Filter(testProducts, "", "skincare")
	if len(got) != 2 {
		t.Fatalf("expected 2 skincare products, got %d", len(got))
	}
	for _, p := range got {
		if p.Category != "skincare" {
			t.Errorf("product %d escaped the category filter: %q", p.ID, p.Category)
		}
	}
}

func TestFilter_WhenBothInputs_ShouldApplyLogicalAnd(t *testing.T) {
	got := Filter(testProducts, "serum", "skincare")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only id 1, got %+v", got)
	}
	if got = Filter(testProducts, "serum", "haircare"); len(got) != 0 {
		t.Errorf("expected no matches across categories, got %+v", got)
	}
}

func TestFilter_OutputIsAlwaysSubsetSatisfyingBothPredicates(t *testing.T) {
	cases := []struct{ term, category string }{
		{"", ""}, {"l'oréal", ""}, {"oil", "men's grooming"},
		{"zzz", ""}, {"", "makeup"}, {"a", "skincare"},
	}
	for _, tc := range cases {
		byID := make(map[int]bool)
		for _, p := range testProducts {
			byID[p.ID] = true
		}
		for _, p := range Filter(testProducts, tc.term, tc.category) {
			if !byID[p.ID] {
				t.Errorf("filter(%q,%q) returned product outside catalog: %d", tc.term, tc.category, p.ID)
			}
			if tc.category != "" && p.Category != tc.category {
				t.Errorf("filter(%q,%q) violated category predicate: %+v", tc.term, tc.category, p)
			}
		}
	}
}
