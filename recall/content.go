package recall

import (
	"context"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/label"
)

// Content 是基于内容的召回源（Content-Based）。
//
// 核心思想："用户偏好某些类目/标签，推荐具有相同属性的其他商品"
//
// 算法流程：
//  1. 把历史交互逐条解析成商品（目录里查不到的静默跳过）
//  2. 统计类目权重 category_weight 与标签权重 tag_weight
//  3. 对每个未交互过的目录商品：
//     score = category_weight[类目] * 2 + Σ tag_weight[标签]
//
// 与协同召回不同，本源会为每个未交互商品都产出一条候选，
// 包括显式的 0 分。缺失的类目/标签权重按 0 计，不是错误。
type Content struct {
	Store core.CatalogStore

	// CategoryWeight 类目命中的权重倍数，默认 2。
	CategoryWeight float64
}

func (r *Content) Name() string        { return "recall.content" }
func (r *Content) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：把本源候选追加到入参 items 上。
func (r *Content) Process(
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
func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil || rctx == nil {
		return nil, nil
	}

	catalog, err := r.Store.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	scores := r.scoreCatalog(rctx.History, catalog)

	byID := make(map[int64]core.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	out := make([]*core.Item, 0, len(scores))
	for id, score := range scores {
		it := core.NewItem(id)
		it.Score = score
		it.PutLabel(LabelRecallSource, label.Label{Value: SourceContent, Source: "recall"})
		// 候选携带商品快照，供下游规则过滤/观测使用
		if p, ok := byID[id]; ok {
			it.PutMeta("name", p.Name)
			it.PutMeta("category", p.Category)
			it.PutMeta("price", p.Price)
		}
		out = append(out, it)
	}
	return out, nil
}

// scoreCatalog 对目录里每个未交互商品打内容分（含显式 0 分）。
func (r *Content) scoreCatalog(history []core.Interaction, catalog []core.Product) map[int64]float64 {
	byID := make(map[int64]core.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	categoryWeight := make(map[string]float64)
	tagWeight := make(map[string]float64)
	for _, in := range history {
		p, ok := byID[in.ProductID]
		if !ok {
			continue // 商品已不在目录里，静默跳过
		}
		categoryWeight[p.Category]++
		for _, tag := range p.TagList() {
			tagWeight[tag]++
		}
	}

	catWeight := r.CategoryWeight
	if catWeight <= 0 {
		catWeight = 2
	}

	interacted := core.ProductSet(history)
	scores := make(map[int64]float64, len(catalog))
	for _, p := range catalog {
		if _, ok := interacted[p.ID]; ok {
			continue
		}
		score := categoryWeight[p.Category] * catWeight
		for _, tag := range p.TagList() {
			score += tagWeight[tag]
		}
		scores[p.ID] = score
	}
	return scores
}
