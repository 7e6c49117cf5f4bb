package pipeline

import (
	"context"

	"github.com/shopkit/rex/core"
)

// Pipeline 把一次推荐请求拆成可组合的 Node 链，按序同步执行。
// 所有打分状态都是请求内局部的，多个请求之间无共享可变状态。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
