package filter

import (
	"context"
	"testing"

	"github.com/shopkit/rex/core"
)

func TestInteracted_RemovesHistoryProducts(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&Interacted{}}}
	rctx := &core.RecommendContext{
		UserID: "u1",
		History: []core.Interaction{
			{UserID: "u1", ProductID: 1},
			{UserID: "u1", ProductID: 3},
		},
	}
	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3), core.NewItem(4)}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{2, 4}
	if len(out) != len(want) {
		t.Fatalf("got %d items, want %d", len(out), len(want))
	}
	for i, it := range out {
		if it.ID != want[i] {
			t.Errorf("position %d: id = %d, want %d", i, it.ID, want[i])
		}
	}
}

func TestInteracted_NoHistoryKeepsAll(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&Interacted{}}}
	items := []*core.Item{core.NewItem(1), core.NewItem(2)}

	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u1"}, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("got %d items, want 2", len(out))
	}
}

func TestRule_FiltersByMeta(t *testing.T) {
	f, err := NewRule(`meta.category != "Restricted"`)
	if err != nil {
		t.Fatal(err)
	}

	allowed := core.NewItem(1)
	allowed.PutMeta("category", "Electronics")
	restricted := core.NewItem(2)
	restricted.PutMeta("category", "Restricted")

	node := &FilterNode{Filters: []Filter{f}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{allowed, restricted})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("got %v, want only item 1", out)
	}
}

func TestNewRule_InvalidExpression(t *testing.T) {
	if _, err := NewRule(`meta.category !==`); err == nil {
		t.Fatal("expected compile error")
	}
}
