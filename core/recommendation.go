package core

// Recommendation 是对外输出的单条推荐：商品全量字段 + 解释文案。
// Score 在个性化链路上为融合分；热门兜底链路不打分，序列化时省略。
type Recommendation struct {
	Product
	Explanation string   `json:"explanation"`
	Score       *float64 `json:"score,omitempty"`
}

// NewScoredRecommendation 构造带分数的推荐条目。
func NewScoredRecommendation(p Product, explanation string, score float64) Recommendation {
	return Recommendation{Product: p, Explanation: explanation, Score: &score}
}
