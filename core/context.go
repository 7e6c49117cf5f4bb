package core

import "github.com/shopkit/rex/pkg/label"

// RecommendContext 承载一次推荐请求的用户与场景信息，贯穿整个 Pipeline 透传。
// History 是编排层预取的目标用户最近交互（最新在前，上限由编排层控制），
// 召回/过滤/解释节点都只读它，不再各自回源查询用户历史。
type RecommendContext struct {
	UserID string
	Scene  string

	// History 目标用户最近的交互记录，最新在前。
	// 个性化链路要求至少一条；空历史走热门兜底，不会进入 Pipeline。
	History []Interaction

	// Labels 是用户级标签，可驱动 Pipeline 行为（新用户、价格敏感等）。
	Labels map[string]label.Label

	// Params 请求级上下文参数（debug、实验分组等）。
	Params map[string]any
}

// RecentHistory 返回最近 n 条交互（最新在前）；n<=0 或超过长度时返回全部。
func (rctx *RecommendContext) RecentHistory(n int) []Interaction {
	if n <= 0 || n >= len(rctx.History) {
		return rctx.History
	}
	return rctx.History[:n]
}

// InteractedProducts 返回历史中出现过的商品 id 集合。
func (rctx *RecommendContext) InteractedProducts() map[int64]struct{} {
	return ProductSet(rctx.History)
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl label.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]label.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = label.Merge(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (label.Label, bool) {
	if rctx.Labels == nil {
		return label.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
