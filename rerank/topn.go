package rerank

import (
	"context"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pipeline"
)

// TopNNode 是 Top-N 截断节点，在排序之后截取前 N 个候选。
//
// 使用场景：
//   - 融合排序后只保留 Top 3 交付给解释节点
//   - 控制推荐结果数量
type TopNNode struct {
	// N 要保留的候选数量。
	// N <= 0 时不截断；N > len(items) 时返回全部。
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
