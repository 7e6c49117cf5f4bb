package recall

import (
	"context"
	"errors"
	"testing"

	"github.com/shopkit/rex/core"
)

func TestCollaborativeScore_WeightsBySharedInteractionCount(t *testing.T) {
	// u2 和 u3 各与目标用户共享一个商品；u2 总共 3 条交互，u3 只有 1 条。
	// 相似度按交互条数计，不按商品去重。
	target := []core.Interaction{
		{UserID: "u1", ProductID: 1},
	}
	all := []core.Interaction{
		{UserID: "u1", ProductID: 1},
		{UserID: "u2", ProductID: 1},
		{UserID: "u2", ProductID: 2},
		{UserID: "u2", ProductID: 3},
		{UserID: "u3", ProductID: 1},
	}

	scores := Score(target, all)

	want := map[int64]float64{2: 1, 3: 1}
	if len(scores) != len(want) {
		t.Fatalf("got %d scored products, want %d: %v", len(scores), len(want), scores)
	}
	for id, w := range want {
		if scores[id] != w {
			t.Errorf("product %d: score = %v, want %v", id, scores[id], w)
		}
	}
}

func TestCollaborativeScore_RepeatedSharedInteractionsInflateSimilarity(t *testing.T) {
	// u2 对共享商品 1 有两条交互，相似度应为 2 而不是 1。
	target := []core.Interaction{
		{UserID: "u1", ProductID: 1},
	}
	all := []core.Interaction{
		{UserID: "u1", ProductID: 1},
		{UserID: "u2", ProductID: 1},
		{UserID: "u2", ProductID: 1},
		{UserID: "u2", ProductID: 2},
	}

	scores := Score(target, all)
	if got := scores[2]; got != 2 {
		t.Errorf("product 2: score = %v, want 2 (similarity counted per interaction)", got)
	}
}

func TestCollaborativeScore_SelfExclusion(t *testing.T) {
	target := []core.Interaction{
		{UserID: "u1", ProductID: 1},
		{UserID: "u1", ProductID: 2},
	}
	all := []core.Interaction{
		{UserID: "u1", ProductID: 1},
		{UserID: "u1", ProductID: 2},
		{UserID: "u2", ProductID: 1},
		{UserID: "u2", ProductID: 2},
		{UserID: "u2", ProductID: 3},
		{UserID: "u3", ProductID: 2},
		{UserID: "u3", ProductID: 1},
	}

	scores := Score(target, all)
	for _, id := range []int64{1, 2} {
		if _, ok := scores[id]; ok {
			t.Errorf("product %d already interacted by target, must not be scored", id)
		}
	}
	if _, ok := scores[3]; !ok {
		t.Errorf("product 3 should be recommended")
	}
}

func TestCollaborativeRecall_EmptyHistoryFails(t *testing.T) {
	r := &Collaborative{}
	_, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if !errors.Is(err, core.ErrEmptyHistory) {
		t.Fatalf("err = %v, want ErrEmptyHistory", err)
	}
}
