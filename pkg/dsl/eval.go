// Package dsl 提供基于 CEL (Common Expression Language) 的规则解释器，
// 用于对候选 Item 做声明式的业务规则判断（过滤、分流）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shopkit/rex/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("meta", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译后的 CEL 规则，编译一次，可并发地对多个 Item 求值。
//
// 表达式可引用：
//   - item.id / item.score
//   - label.<key>: Item 标签的 Value（缺失为 null，用 != null 判存在性）
//   - meta.<key>: Item 元信息（category / price 等）
//   - rctx.user_id / rctx.scene
//
// 示例：
//   - `item.score >= 0.0`
//   - `meta.category != "Restricted"`
//   - `label.recall_source != null && label.recall_source.contains("cf")`
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。空表达式视为恒真（不限制）。
func Compile(expr string) (*Rule, error) {
	r := &Rule{expr: expr}
	if expr == "" {
		return r, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	r.prg = prg
	return r, nil
}

// Expr 返回原始表达式文本。
func (r *Rule) Expr() string { return r.expr }

// Eval 对单个 Item 求值，表达式必须返回布尔。
func (r *Rule) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if r.prg == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；应使用 label.key != null 判存在性
		return false, fmt.Errorf("eval %q: %w", r.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expression must return boolean, got %T", r.expr, out.Value())
	}
	return result, nil
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = v.Value
	}

	meta := make(map[string]any, len(item.Meta))
	for k, v := range item.Meta {
		meta[k] = v
	}

	in := map[string]any{
		"item": map[string]any{
			"id":    item.ID,
			"score": item.Score,
		},
		"label": labels,
		"meta":  meta,
	}

	if rctx != nil {
		in["rctx"] = map[string]any{
			"user_id": rctx.UserID,
			"scene":   rctx.Scene,
		}
	} else {
		in["rctx"] = map[string]any{}
	}
	return in
}
