package engine

import (
	"context"
	"testing"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/explain"
	"github.com/shopkit/rex/store"
)

func newTestRecommender(t *testing.T) (*Recommender, *store.Catalog, *store.Interactions) {
	t.Helper()
	kv := store.NewMemoryStore()
	t.Cleanup(func() { kv.Close() })

	catalog := store.NewCatalog(kv)
	interactions := store.NewInteractions(kv)

	ctx := context.Background()
	products := []core.Product{
		{Name: "Headphones", Category: "Electronics", Price: 89.99, Description: "Over-ear.", Tags: "audio,wireless"},
		{Name: "Speaker", Category: "Electronics", Price: 59.99, Description: "Portable.", Tags: "audio,portable"},
		{Name: "Novel", Category: "Books", Price: 12.99, Description: "Fiction.", Tags: "fiction,paperback"},
		{Name: "Mug", Category: "Kitchen", Price: 9.99, Description: "Ceramic.", Tags: "ceramic"},
		{Name: "Keyboard", Category: "Electronics", Price: 49.99, Description: "Mechanical.", Tags: "wireless,accessories"},
	}
	for _, p := range products {
		if _, err := catalog.AddProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	return New(catalog, interactions), catalog, interactions
}

func TestRecommend_NoHistoryFallsBackToPopular(t *testing.T) {
	rec, _, _ := newTestRecommender(t)
	ctx := context.Background()

	// 其他用户的交互决定热度：商品 3 两次、商品 1 一次
	for _, in := range []struct {
		user    string
		product int64
	}{
		{"bob", 3}, {"bob", 3}, {"carol", 1},
	} {
		if err := rec.RecordInteraction(ctx, in.user, in.product, "view"); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := rec.Recommend(ctx, "newcomer")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	// 3 (2 次) > 1 (1 次) > 2 (0 次，id 升序补位)
	wantOrder := []int64{3, 1, 2}
	for i, r := range recs {
		if r.ID != wantOrder[i] {
			t.Errorf("position %d: id = %d, want %d", i, r.ID, wantOrder[i])
		}
		if r.Explanation != explain.PopularExplanation {
			t.Errorf("explanation = %q, want fixed popular literal", r.Explanation)
		}
		if r.Score != nil {
			t.Errorf("popular recommendation must not carry a score, got %v", *r.Score)
		}
	}
}

func TestRecommend_Personalized(t *testing.T) {
	rec, _, _ := newTestRecommender(t)
	ctx := context.Background()

	seed := []struct {
		user    string
		product int64
	}{
		{"alice", 1},
		{"bob", 1}, {"bob", 2}, {"bob", 5},
		{"carol", 3},
	}
	for _, in := range seed {
		if err := rec.RecordInteraction(ctx, in.user, in.product, "view"); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := rec.Recommend(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 || len(recs) > 3 {
		t.Fatalf("got %d recommendations, want 1..3", len(recs))
	}

	for i, r := range recs {
		if r.ID == 1 {
			t.Errorf("interacted product 1 must be excluded")
		}
		if r.Score == nil {
			t.Fatalf("personalized recommendation %d missing score", i)
		}
		if r.Explanation == "" {
			t.Errorf("recommendation %d missing explanation", i)
		}
		if i > 0 && *recs[i].Score > *recs[i-1].Score {
			t.Errorf("scores not non-increasing: %v > %v", *recs[i].Score, *recs[i-1].Score)
		}
	}

	// 商品 2 与 5：协同分 1*1.5，内容分 类目 1*2 + 标签命中
	// (2: audio=1 → 4.5; 5: wireless=1 → 4.5)，并列按 id 升序
	if recs[0].ID != 2 || recs[1].ID != 5 {
		t.Errorf("top positions = [%d %d], want [2 5]", recs[0].ID, recs[1].ID)
	}
}

func TestRecordInteraction_DefaultsTypeAndTimestamp(t *testing.T) {
	rec, _, interactions := newTestRecommender(t)
	ctx := context.Background()

	if err := rec.RecordInteraction(ctx, "alice", 1, ""); err != nil {
		t.Fatal(err)
	}

	got, err := interactions.GetUserInteractions(ctx, "alice", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d interactions, want 1", len(got))
	}
	if got[0].Type != core.DefaultInteractionType {
		t.Errorf("type = %q, want %q", got[0].Type, core.DefaultInteractionType)
	}
	if got[0].Timestamp == "" {
		t.Errorf("timestamp not assigned")
	}
}

func TestUserHistory_JoinsProductFields(t *testing.T) {
	rec, _, _ := newTestRecommender(t)
	ctx := context.Background()

	if err := rec.RecordInteraction(ctx, "alice", 1, "view"); err != nil {
		t.Fatal(err)
	}
	if err := rec.RecordInteraction(ctx, "alice", 3, "purchase"); err != nil {
		t.Fatal(err)
	}

	history, err := rec.UserHistory(ctx, "alice", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d entries, want 2", len(history))
	}
	// 最新在前
	if history[0].Product != "Novel" || history[0].Type != "purchase" {
		t.Errorf("entry 0 = %+v, want Novel/purchase", history[0])
	}
	if history[1].Product != "Headphones" || history[1].Category != "Electronics" {
		t.Errorf("entry 1 = %+v, want Headphones/Electronics", history[1])
	}
}
