package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopkit/rex/core"
)

func newCatalogFixture(t *testing.T) (*Catalog, *Interactions) {
	t.Helper()
	kv := NewMemoryStore()
	t.Cleanup(func() { kv.Close() })
	return NewCatalog(kv), NewInteractions(kv)
}

func TestCatalog_AddAndGet(t *testing.T) {
	catalog, _ := newCatalogFixture(t)
	ctx := context.Background()

	p, err := catalog.AddProduct(ctx, core.Product{Name: "Headphones", Category: "Electronics", Tags: "audio,wireless"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 1 {
		t.Errorf("first product id = %d, want 1", p.ID)
	}

	got, err := catalog.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Headphones" || got.Category != "Electronics" {
		t.Errorf("got %+v", got)
	}

	_, err = catalog.GetProductByID(ctx, 99)
	if !errors.Is(err, core.ErrProductNotFound) {
		t.Errorf("missing product: err = %v, want ErrProductNotFound", err)
	}
}

func TestCatalog_GetAllProductsSortedByID(t *testing.T) {
	catalog, _ := newCatalogFixture(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := catalog.AddProduct(ctx, core.Product{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := catalog.GetAllProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d products, want 3", len(all))
	}
	for i, p := range all {
		if p.ID != int64(i+1) {
			t.Errorf("position %d: id = %d, want %d", i, p.ID, i+1)
		}
	}
}

func TestCatalog_PopularIncludesZeroInteractionProducts(t *testing.T) {
	catalog, interactions := newCatalogFixture(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D"} {
		if _, err := catalog.AddProduct(ctx, core.Product{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	// B 两次，D 一次，A/C 零次
	for _, id := range []int64{2, 2, 4} {
		if err := interactions.InsertInteraction(ctx, core.Interaction{UserID: "u1", ProductID: id, Type: "view"}); err != nil {
			t.Fatal(err)
		}
	}

	top, err := catalog.GetPopularProducts(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{2, 4, 1} // 零交互商品按 id 升序补位
	if len(top) != len(want) {
		t.Fatalf("got %d products, want %d", len(top), len(want))
	}
	for i, p := range top {
		if p.ID != want[i] {
			t.Errorf("position %d: id = %d, want %d", i, p.ID, want[i])
		}
	}
}

func TestInteractions_UserLogNewestFirst(t *testing.T) {
	_, interactions := newCatalogFixture(t)
	ctx := context.Background()

	events := []core.Interaction{
		{UserID: "u1", ProductID: 1, Type: "view", Timestamp: "2026-08-01T10:00:00Z"},
		{UserID: "u1", ProductID: 2, Type: "click", Timestamp: "2026-08-02T10:00:00Z"},
		{UserID: "u2", ProductID: 3, Type: "view", Timestamp: "2026-08-03T10:00:00Z"},
		{UserID: "u1", ProductID: 4, Type: "purchase", Timestamp: "2026-08-01T09:00:00Z"},
	}
	for _, in := range events {
		if err := interactions.InsertInteraction(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	got, err := interactions.GetUserInteractions(ctx, "u1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d interactions, want 2 (limit)", len(got))
	}
	if got[0].ProductID != 2 || got[1].ProductID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", got[0].ProductID, got[1].ProductID)
	}

	all, err := interactions.GetAllInteractions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("full log has %d entries, want 4", len(all))
	}
}

func TestSeedDefaultCatalog_Idempotent(t *testing.T) {
	catalog, _ := newCatalogFixture(t)
	ctx := context.Background()

	n, err := SeedDefaultCatalog(ctx, catalog)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(DefaultCatalog()) {
		t.Errorf("seeded %d products, want %d", n, len(DefaultCatalog()))
	}

	n, err = SeedDefaultCatalog(ctx, catalog)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second seed wrote %d products, want 0", n)
	}
}
