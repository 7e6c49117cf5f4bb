package filter

import (
	"context"

	"github.com/shopkit/rex/core"
)

// Interacted 剔除目标用户历史中已出现过的商品。
//
// 不变式：已交互商品永远不进推荐结果。召回源各自做了自排除，
// 这里是 Pipeline 级的兜底：即使接入了不守规矩的自定义召回源，
// 不变式也成立。
type Interacted struct{}

func (f *Interacted) Name() string { return "filter.interacted" }

func (f *Interacted) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || len(rctx.History) == 0 {
		return false, nil
	}
	_, owned := rctx.InteractedProducts()[item.ID]
	return owned, nil
}
