package recall

import (
	"context"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/label"
)

// Popular 是热门召回源：按交互总数降序取 TopK。
// 编排层的无历史分支直接用它兜底；也可以作为普通召回源进 Pipeline。
type Popular struct {
	Store core.CatalogStore

	// TopK 返回的商品数量，默认 3。
	TopK int
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：把本源候选追加到入参 items 上。
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out, err := r.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	return append(items, out...), nil
}

// Recall 实现 Source 接口。
func (r *Popular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 3
	}

	products, err := r.Store.GetPopularProducts(ctx, topK)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(products))
	for _, p := range products {
		it := core.NewItem(p.ID)
		it.PutLabel(LabelRecallSource, label.Label{Value: SourcePopular, Source: "recall"})
		it.PutMeta("name", p.Name)
		it.PutMeta("category", p.Category)
		it.PutMeta("price", p.Price)
		out = append(out, it)
	}
	return out, nil
}
