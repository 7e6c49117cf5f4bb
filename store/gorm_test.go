package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopkit/rex/core"
)

func newGormFixture(t *testing.T) *GormStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGormStore_ProductRoundtrip(t *testing.T) {
	s := newGormFixture(t)
	ctx := context.Background()

	p, err := s.AddProduct(ctx, core.Product{Name: "Headphones", Category: "Electronics", Price: 89.99, Tags: "audio,wireless"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := s.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Headphones" || got.Price != 89.99 {
		t.Errorf("got %+v", got)
	}

	_, err = s.GetProductByID(ctx, 999)
	if !errors.Is(err, core.ErrProductNotFound) {
		t.Errorf("missing product: err = %v, want ErrProductNotFound", err)
	}
}

func TestGormStore_PopularLeftJoinSemantics(t *testing.T) {
	s := newGormFixture(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := s.AddProduct(ctx, core.Product{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []int64{2, 2, 3} {
		in := core.Interaction{UserID: "u1", ProductID: id, Type: "view", Timestamp: "2026-08-01T10:00:00Z"}
		if err := s.InsertInteraction(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	top, err := s.GetPopularProducts(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{2, 3, 1} // 零交互的 1 仍参与排名
	if len(top) != len(want) {
		t.Fatalf("got %d products, want %d", len(top), len(want))
	}
	for i, p := range top {
		if p.ID != want[i] {
			t.Errorf("position %d: id = %d, want %d", i, p.ID, want[i])
		}
	}
}

func TestGormStore_UserInteractionsNewestFirst(t *testing.T) {
	s := newGormFixture(t)
	ctx := context.Background()

	events := []core.Interaction{
		{UserID: "u1", ProductID: 1, Type: "view", Timestamp: "2026-08-01T10:00:00Z"},
		{UserID: "u1", ProductID: 2, Type: "click", Timestamp: "2026-08-02T10:00:00Z"},
		{UserID: "u2", ProductID: 3, Type: "view", Timestamp: "2026-08-03T10:00:00Z"},
	}
	for _, in := range events {
		if err := s.InsertInteraction(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.GetUserInteractions(ctx, "u1", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d interactions, want 2", len(got))
	}
	if got[0].ProductID != 2 {
		t.Errorf("newest first: got product %d, want 2", got[0].ProductID)
	}
}
