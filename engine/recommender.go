// Package engine 把召回、融合、过滤与解释编排成端到端的推荐流程。
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/explain"
	"github.com/shopkit/rex/filter"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/logging"
	"github.com/shopkit/rex/rank"
	"github.com/shopkit/rex/recall"
	"github.com/shopkit/rex/rerank"
)

const (
	defaultHistoryLimit = 20 // 个性化链路读取的最近交互条数
	defaultTopK         = 3  // 最终交付的推荐条数
)

// Recommender 是推荐编排器，按用户是否有历史走两条路径：
//
//   - 无历史 → 热门兜底：按交互总数取 Top3，固定文案，不带分数
//   - 有历史 → 个性化：取最近 20 条交互进 Pipeline
//     （协同召回 → 内容召回 → 已交互过滤 → 加权融合 → Top3 → 模板解释）
//
// 所有打分状态都是请求内局部的；不同请求相互独立，不需要协调。
type Recommender struct {
	catalog      core.CatalogStore
	interactions core.InteractionStore
	pipe         *pipeline.Pipeline
	log          *zap.SugaredLogger
	historyLimit int
	topK         int
	cfWeight     float64
	scene        string
}

// Option 配置 Recommender。
type Option func(*Recommender)

// WithLogger 注入日志器；缺省为 no-op。
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Recommender) { r.log = log }
}

// WithTopK 调整最终交付条数（默认 3）。
func WithTopK(k int) Option {
	return func(r *Recommender) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithHistoryLimit 调整个性化链路读取的历史条数（默认 20）。
func WithHistoryLimit(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

// WithCFWeight 调整协同分的融合权重（默认 1.5）。
func WithCFWeight(w float64) Option {
	return func(r *Recommender) {
		if w > 0 {
			r.cfWeight = w
		}
	}
}

// WithPipeline 整体替换个性化 Pipeline（配置驱动装配时使用）。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(r *Recommender) { r.pipe = p }
}

// WithScene 设置透传到 RecommendContext 的场景标识。
func WithScene(scene string) Option {
	return func(r *Recommender) { r.scene = scene }
}

// New 构造 Recommender。catalog 与 interactions 为注入的存储能力。
func New(catalog core.CatalogStore, interactions core.InteractionStore, opts ...Option) *Recommender {
	r := &Recommender{
		catalog:      catalog,
		interactions: interactions,
		historyLimit: defaultHistoryLimit,
		topK:         defaultTopK,
		cfWeight:     0, // 0 表示用融合节点自身默认值 1.5
		scene:        "recommend",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logging.Nop()
	}
	if r.pipe == nil {
		r.pipe = r.defaultPipeline()
	}
	return r
}

// defaultPipeline 组装标准个性化链路。
func (r *Recommender) defaultPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Collaborative{Store: r.interactions},
			&recall.Content{Store: r.catalog},
			&filter.FilterNode{Filters: []filter.Filter{&filter.Interacted{}}},
			&rank.WeightedFusion{CFWeight: r.cfWeight},
			&rerank.TopNNode{N: r.topK},
			&explain.Node{Generator: &explain.Generator{Store: r.catalog}},
		},
	}
}

// Recommend 为用户产出至多 topK 条推荐。
func (r *Recommender) Recommend(ctx context.Context, userID string) ([]core.Recommendation, error) {
	history, err := r.interactions.GetUserInteractions(ctx, userID, r.historyLimit)
	if err != nil {
		return nil, err
	}

	if len(history) == 0 {
		r.log.Debugw("no history, falling back to popular", "user_id", userID)
		return r.popular(ctx)
	}

	rctx := &core.RecommendContext{
		UserID:  userID,
		Scene:   r.scene,
		History: history,
	}

	items, err := r.pipe.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	recs := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		product, ok := it.Meta[explain.MetaProduct].(core.Product)
		if !ok {
			// 解释节点没挂商品快照（目录里已解析不到），静默丢弃
			continue
		}
		recs = append(recs, core.NewScoredRecommendation(
			product,
			it.MetaString(explain.MetaExplanation),
			it.Score,
		))
	}

	r.log.Debugw("personalized recommendations",
		"user_id", userID, "history", len(history), "results", len(recs))
	return recs, nil
}

// popular 是无历史用户的热门兜底：Top3、固定文案、不带分数。
func (r *Recommender) popular(ctx context.Context) ([]core.Recommendation, error) {
	products, err := r.catalog.GetPopularProducts(ctx, r.topK)
	if err != nil {
		return nil, err
	}

	recs := make([]core.Recommendation, 0, len(products))
	for _, p := range products {
		recs = append(recs, core.Recommendation{
			Product:     p,
			Explanation: explain.PopularExplanation,
		})
	}
	return recs, nil
}

// RecordInteraction 记录一次用户行为：补默认类型与服务端时间戳后落库。
func (r *Recommender) RecordInteraction(ctx context.Context, userID string, productID int64, interactionType string) error {
	if interactionType == "" {
		interactionType = core.DefaultInteractionType
	}
	in := core.Interaction{
		UserID:    userID,
		ProductID: productID,
		Type:      interactionType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return r.interactions.InsertInteraction(ctx, in)
}

// HistoryEntry 是用户历史查询的展示条目（交互记录与商品名/类目拼接）。
type HistoryEntry struct {
	Product   string `json:"product"`
	Category  string `json:"category"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// UserHistory 返回用户最近 limit 条交互，按时间降序并拼上商品信息。
// 目录里解析不到的商品跳过。
func (r *Recommender) UserHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	history, err := r.interactions.GetUserInteractions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntry, 0, len(history))
	for _, in := range history {
		p, err := r.catalog.GetProductByID(ctx, in.ProductID)
		if err != nil {
			if core.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, HistoryEntry{
			Product:   p.Name,
			Category:  p.Category,
			Type:      in.Type,
			Timestamp: in.Timestamp,
		})
	}
	return out, nil
}

// Catalog 暴露目录读取能力给上层（服务端 /api/products）。
func (r *Recommender) Catalog() core.CatalogStore { return r.catalog }
