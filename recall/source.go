package recall

import (
	"context"

	"github.com/shopkit/rex/core"
)

// Source 表示一个可复用的召回源（协同 / 内容 / 热门 / ...）。
// 召回源只产出自己的候选；在 Pipeline 中以 Node 形态使用时，
// 各节点把产出追加到入参 items 上，由下游融合节点按来源合并。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// 标准 label key。
const (
	LabelRecallSource = "recall_source"
)

// 召回来源取值。
const (
	SourceCF      = "cf"      // 协同过滤
	SourceContent = "content" // 内容匹配
	SourcePopular = "popular" // 热门兜底
)
