// Package config 提供配置驱动的 Pipeline 装配与应用配置加载。
package config

import (
	"fmt"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/explain"
	"github.com/shopkit/rex/filter"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/conv"
	"github.com/shopkit/rex/rank"
	"github.com/shopkit/rex/recall"
	"github.com/shopkit/rex/rerank"
)

// Deps 是 Node 构建器需要的存储依赖。
type Deps struct {
	Catalog      core.CatalogStore
	Interactions core.InteractionStore
}

// DefaultFactory 返回一个包含所有内置 Node 的默认工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// 注册 Recall Nodes
	factory.Register("recall.cf", func(cfg map[string]any) (pipeline.Node, error) {
		return buildCFNode(deps, cfg)
	})
	factory.Register("recall.content", func(cfg map[string]any) (pipeline.Node, error) {
		return buildContentNode(deps, cfg)
	})
	factory.Register("recall.popular", func(cfg map[string]any) (pipeline.Node, error) {
		return buildPopularNode(deps, cfg)
	})

	// 注册 Rank Nodes
	factory.Register("rank.fuse", buildFuseNode)

	// 注册 ReRank Nodes
	factory.Register("rerank.topn", buildTopNNode)

	// 注册 Filter Nodes
	factory.Register("filter", buildFilterNode)

	// 注册 PostProcess Nodes
	factory.Register("explain.template", func(cfg map[string]any) (pipeline.Node, error) {
		return buildExplainNode(deps, cfg)
	})

	return factory
}

func buildCFNode(deps Deps, _ map[string]any) (pipeline.Node, error) {
	if deps.Interactions == nil {
		return nil, fmt.Errorf("recall.cf requires an interaction store")
	}
	return &recall.Collaborative{Store: deps.Interactions}, nil
}

func buildContentNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("recall.content requires a catalog store")
	}
	return &recall.Content{
		Store:          deps.Catalog,
		CategoryWeight: conv.ConfigGetFloat(cfg, "category_weight", 0),
	}, nil
}

func buildPopularNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("recall.popular requires a catalog store")
	}
	return &recall.Popular{
		Store: deps.Catalog,
		TopK:  conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

func buildFuseNode(cfg map[string]any) (pipeline.Node, error) {
	return &rank.WeightedFusion{
		CFWeight: conv.ConfigGetFloat(cfg, "cf_weight", 0),
	}, nil
}

func buildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: conv.ConfigGetInt(cfg, "n", 0),
	}, nil
}

func buildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filters := []filter.Filter{}

	if conv.ConfigGet(cfg, "interacted", true) {
		filters = append(filters, &filter.Interacted{})
	}

	if rules, ok := cfg["rules"].([]any); ok {
		for _, r := range rules {
			expr, ok := r.(string)
			if !ok {
				continue
			}
			rule, err := filter.NewRule(expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule %q: %w", expr, err)
			}
			filters = append(filters, rule)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func buildExplainNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("explain.template requires a catalog store")
	}
	return &explain.Node{
		Generator:    &explain.Generator{Store: deps.Catalog},
		HistoryLimit: conv.ConfigGetInt(cfg, "history_limit", 0),
	}, nil
}
