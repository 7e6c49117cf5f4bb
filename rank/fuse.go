package rank

import (
	"context"
	"sort"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/label"
	"github.com/shopkit/rex/recall"
)

// WeightedFusion 是融合排序节点：把上游多个召回源产出的候选按商品 id
// 归并成单一排序列表。
//
// 融合公式（对出现在任一来源里的每个商品）：
//
//	final = cf_score * CFWeight + content_score
//
// 缺失一侧按 0 计。排序按 final 降序；平分时按商品 id 升序，
// 保证输出可复现（而不是依赖 map 迭代顺序）。
type WeightedFusion struct {
	// CFWeight 协同分的权重倍数，默认 1.5。
	CFWeight float64
}

func (n *WeightedFusion) Name() string        { return "rank.fuse" }
func (n *WeightedFusion) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *WeightedFusion) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	weight := n.CFWeight
	if weight <= 0 {
		weight = 1.5
	}

	type entry struct {
		cf      float64
		content float64
		merged  *core.Item
	}
	entries := make(map[int64]*entry, len(items))
	order := make([]int64, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		e, ok := entries[it.ID]
		if !ok {
			e = &entry{merged: core.NewItem(it.ID)}
			entries[it.ID] = e
			order = append(order, it.ID)
		}

		source := ""
		if lbl, ok := it.Labels[recall.LabelRecallSource]; ok {
			source = lbl.Value
		}
		switch source {
		case recall.SourceCF:
			e.cf += it.Score
		default:
			// 内容召回及其他来源按未加权分参与融合
			e.content += it.Score
		}

		for k, v := range it.Labels {
			e.merged.PutLabel(k, v)
		}
		for k, v := range it.Meta {
			e.merged.PutMeta(k, v)
		}
	}

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		e := entries[id]
		e.merged.Score = e.cf*weight + e.content
		e.merged.PutLabel("rank_model", label.Label{Value: "weighted_fusion", Source: "rank"})
		out = append(out, e.merged)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
