package recall

import (
	"testing"

	"github.com/shopkit/rex/core"
)

func contentCatalog() []core.Product {
	return []core.Product{
		{ID: 1, Name: "Headphones", Category: "Electronics", Tags: "audio,wireless"},
		{ID: 2, Name: "Speaker", Category: "Electronics", Tags: "audio,portable"},
		{ID: 3, Name: "Novel", Category: "Books", Tags: "fiction"},
		{ID: 4, Name: "Mug", Category: "Kitchen", Tags: ""},
	}
}

func TestContentScoreCatalog(t *testing.T) {
	r := &Content{}
	history := []core.Interaction{
		{UserID: "u1", ProductID: 1},
	}

	scores := r.scoreCatalog(history, contentCatalog())

	if _, ok := scores[1]; ok {
		t.Errorf("interacted product 1 must not be scored")
	}
	// Speaker: 类目命中 1*2 + 标签 audio 命中 1
	if got := scores[2]; got != 3 {
		t.Errorf("product 2: score = %v, want 3", got)
	}
	// Novel 与 Mug 无任何命中，仍要有显式 0 分
	for _, id := range []int64{3, 4} {
		got, ok := scores[id]
		if !ok {
			t.Fatalf("product %d: missing explicit zero score", id)
		}
		if got != 0 {
			t.Errorf("product %d: score = %v, want 0", id, got)
		}
	}
}

func TestContentScoreCatalog_MissingHistoryProductSkipped(t *testing.T) {
	r := &Content{}
	history := []core.Interaction{
		{UserID: "u1", ProductID: 99}, // 目录里不存在
		{UserID: "u1", ProductID: 1},
	}

	scores := r.scoreCatalog(history, contentCatalog())

	// 99 解析失败不报错也不计权重，其余商品照常打分
	if got := scores[2]; got != 3 {
		t.Errorf("product 2: score = %v, want 3", got)
	}
}

func TestContentScoreCatalog_TagAccumulation(t *testing.T) {
	r := &Content{}
	history := []core.Interaction{
		{UserID: "u1", ProductID: 1},
		{UserID: "u1", ProductID: 2},
	}

	scores := r.scoreCatalog(history, contentCatalog())

	// 候选只剩 3 和 4；audio 权重累到 2 但两者都没有 audio 标签
	if got := scores[3]; got != 0 {
		t.Errorf("product 3: score = %v, want 0", got)
	}
	if len(scores) != 2 {
		t.Errorf("got %d candidates, want 2: %v", len(scores), scores)
	}
}
