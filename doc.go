// Package rex 是一个电商商品推荐引擎（Recommendation Engine for X-commerce）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，承载召回来源与解释模板标识
// - 双路径编排: 有历史用户走个性化链路，无历史用户走热门兜底
package rex

import "github.com/shopkit/rex/pipeline"

// 轻量 facade：便于用户直接 import "rex" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
