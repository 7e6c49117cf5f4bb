package recall

import (
	"context"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/label"
)

// Collaborative 是基于用户重合度的协同过滤召回源（User-Overlap CF）。
//
// 核心思想："触碰过相同商品的用户，兴趣相似"
//
// 算法流程：
//  1. 目标用户历史 → 商品集合 target_products
//  2. 扫全量日志：其他用户每有一条落在 target_products 里的交互，
//     相似度 similar[other_user] += 1
//  3. 对每个相似用户，再扫其全部交互：不在 target_products 里的商品
//     按该用户的相似度加权累加
//
// 注意：第 2/3 步都按"交互条数"计数，不按商品去重：同一共享商品的
// 重复交互会抬高相似度权重。这是要保留的既有行为，不要改成集合去重。
//
// 前置条件：rctx.History 至少一条（目标用户 id 取自第一条）。
// 空历史返回 core.ErrEmptyHistory，编排层必须先走无历史分支。
type Collaborative struct {
	Store core.InteractionStore
}

func (r *Collaborative) Name() string        { return "recall.cf" }
func (r *Collaborative) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：把本源候选追加到入参 items 上。
func (r *Collaborative) Process(
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
func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || len(rctx.History) == 0 {
		return nil, core.ErrEmptyHistory
	}
	if r.Store == nil {
		return nil, nil
	}

	all, err := r.Store.GetAllInteractions(ctx)
	if err != nil {
		return nil, err
	}

	scores := Score(rctx.History, all)

	out := make([]*core.Item, 0, len(scores))
	for id, score := range scores {
		it := core.NewItem(id)
		it.Score = score
		it.PutLabel(LabelRecallSource, label.Label{Value: SourceCF, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// Score 计算目标用户对各候选商品的协同分。
// targetHistory 为目标用户的交互（至少一条，目标用户 id 取自首条），
// all 为全量交互日志（顺序不限）。返回 商品id → 累计分；
// 目标用户已交互过的商品不会出现在结果中（自排除）。
func Score(targetHistory []core.Interaction, all []core.Interaction) map[int64]float64 {
	targetUser := targetHistory[0].UserID
	targetProducts := core.ProductSet(targetHistory)

	// 相似用户计数：共享商品上的每条交互都 +1（不去重）
	similar := make(map[string]int)
	for _, in := range all {
		if _, shared := targetProducts[in.ProductID]; shared && in.UserID != targetUser {
			similar[in.UserID]++
		}
	}

	// 相似用户触碰过、目标用户没触碰过的商品，按相似度加权累加
	recommended := make(map[int64]float64)
	for user, sim := range similar {
		for _, in := range all {
			if in.UserID != user {
				continue
			}
			if _, owned := targetProducts[in.ProductID]; owned {
				continue
			}
			recommended[in.ProductID] += float64(sim)
		}
	}
	return recommended
}
