package explain

import (
	"context"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/label"
)

// MetaExplanation 与 MetaProduct 是解释节点写入 Item.Meta 的 key。
const (
	MetaExplanation = "explanation"
	MetaProduct     = "product"
)

// Node 是解释后处理节点：为每个幸存候选渲染解释文案，并把目录中的
// 商品全量记录挂到 Meta 上供编排层组装输出。
// 目录里解析不到的候选被静默丢弃（不是错误）。
type Node struct {
	Generator *Generator

	// HistoryLimit 参与模式统计的近期交互条数，默认 5（最新在前）。
	HistoryLimit int
}

func (n *Node) Name() string        { return "explain.template" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Generator == nil || len(items) == 0 {
		return items, nil
	}

	limit := n.HistoryLimit
	if limit <= 0 {
		limit = 5
	}
	var history []core.Interaction
	if rctx != nil {
		history = rctx.RecentHistory(limit)
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		product, err := n.Generator.Store.GetProductByID(ctx, it.ID)
		if err != nil {
			if core.IsNotFound(err) {
				continue // 候选已不在目录里，静默丢弃
			}
			return nil, err
		}

		text, template, err := n.Generator.Explain(ctx, history, product)
		if err != nil {
			return nil, err
		}

		it.PutMeta(MetaExplanation, text)
		it.PutMeta(MetaProduct, product)
		it.PutLabel("explain_template", label.Label{Value: template, Source: "explain"})
		out = append(out, it)
	}
	return out, nil
}
