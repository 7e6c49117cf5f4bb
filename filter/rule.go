package filter

import (
	"context"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/pkg/dsl"
)

// Rule 是基于 CEL 表达式的规则过滤器：表达式描述"保留条件"，
// 求值为 false 的候选被剔除。表达式在构造时编译一次。
//
// 示例：
//
//	f, _ := filter.NewRule(`meta.category != "Restricted"`)
//	f, _ := filter.NewRule(`item.score >= 0.0 && label.recall_source != null`)
type Rule struct {
	rule *dsl.Rule
}

// NewRule 编译表达式并构造规则过滤器。空表达式恒保留。
func NewRule(expr string) (*Rule, error) {
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{rule: rule}, nil
}

func (f *Rule) Name() string { return "filter.rule" }

// Expr 返回规则表达式文本。
func (f *Rule) Expr() string { return f.rule.Expr() }

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := f.rule.Eval(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
