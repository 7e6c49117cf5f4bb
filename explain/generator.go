// Package explain 生成推荐理由文案。
//
// 虽然上游系统把这类文案叫"LLM 解释"，这里没有任何生成式模型调用：
// 解释是对用户近期行为模式的确定性模板渲染，相同输入永远产出
// 逐字节相同的文案。
package explain

import (
	"context"
	"fmt"

	"github.com/shopkit/rex/core"
)

// 四个固定模板，按匹配强度排列。
const (
	tmplPerfectMatch = "Perfect match! You've been interested in %s products, especially %s items. This %s fits your preferences perfectly."
	tmplCategory     = "Since you've been browsing %s products, we think you'll love this %s. %s"
	tmplTag          = "Based on your interest in %s products, this %s is a great match. It combines quality and functionality you're looking for!"
	tmplFallback     = "Customers with similar interests loved this %s. %s - it might be just what you're looking for!"
)

// 模板标识，写进 explain_template label 供观测。
const (
	TemplatePerfectMatch = "perfect_match"
	TemplateCategory     = "category"
	TemplateTag          = "tag"
	TemplateFallback     = "fallback"
)

// PopularExplanation 是无历史用户热门兜底的固定文案。
const PopularExplanation = "Popular product among our customers!"

// placeholderCategory 在历史商品全部无法解析、类目统计为空时兜底，
// 避免对空 map 取最大值。
const placeholderCategory = "products"

// Generator 根据用户近期行为与目标商品渲染解释文案。
//
// 流程：
//  1. 逐条解析历史商品的类目与标签（目录查不到的跳过）
//  2. 统计频次，取主导类目与 Top2 标签（平分保首见顺序）
//  3. 目标商品标签与 Top2 标签求交集（保持商品自身标签顺序）
//  4. 按精确匹配 → 类目匹配 → 标签匹配 → 通用兜底的先后选模板
type Generator struct {
	Store core.CatalogStore
}

// Explain 渲染单条解释。history 为用户近期交互（最新在前，调用方截断），
// product 为被推荐的目标商品。
func (g *Generator) Explain(ctx context.Context, history []core.Interaction, product core.Product) (string, string, error) {
	dominant, topTags, err := g.patterns(ctx, history)
	if err != nil {
		return "", "", err
	}

	matching := matchingTags(product, topTags)

	switch {
	case product.Category == dominant && len(matching) > 0:
		return fmt.Sprintf(tmplPerfectMatch, dominant, matching[0], product.Name), TemplatePerfectMatch, nil
	case product.Category == dominant:
		return fmt.Sprintf(tmplCategory, dominant, product.Name, product.Description), TemplateCategory, nil
	case len(matching) > 0:
		return fmt.Sprintf(tmplTag, matching[0], product.Name), TemplateTag, nil
	default:
		return fmt.Sprintf(tmplFallback, product.Name, product.Description), TemplateFallback, nil
	}
}

// patterns 统计历史行为的主导类目与 Top2 标签。
func (g *Generator) patterns(ctx context.Context, history []core.Interaction) (string, []string, error) {
	categoryCounts := make(map[string]int)
	categoryOrder := make([]string, 0, len(history))
	tagCounts := make(map[string]int)
	tagOrder := make([]string, 0, len(history)*2)

	for _, in := range history {
		p, err := g.Store.GetProductByID(ctx, in.ProductID)
		if err != nil {
			if core.IsNotFound(err) {
				continue // 商品已不在目录里
			}
			return "", nil, err
		}
		if _, seen := categoryCounts[p.Category]; !seen {
			categoryOrder = append(categoryOrder, p.Category)
		}
		categoryCounts[p.Category]++
		for _, tag := range p.TagList() {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	// 主导类目：最高频次，平分保首见顺序；空统计用占位类目兜底
	dominant := placeholderCategory
	best := 0
	for _, cat := range categoryOrder {
		if categoryCounts[cat] > best {
			dominant = cat
			best = categoryCounts[cat]
		}
	}

	return dominant, topTags(tagOrder, tagCounts, 2), nil
}

// topTags 按频次降序取前 n 个标签，平分保首见顺序（稳定排序）。
func topTags(order []string, counts map[string]int, n int) []string {
	sorted := make([]string, len(order))
	copy(sorted, order)
	// 插入排序，稳定且标签数很小
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && counts[sorted[j]] > counts[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// matchingTags 返回目标商品标签与 top 标签的交集，保持商品自身标签顺序。
func matchingTags(product core.Product, top []string) []string {
	topSet := make(map[string]struct{}, len(top))
	for _, t := range top {
		topSet[t] = struct{}{}
	}
	var out []string
	for _, tag := range product.TagList() {
		if _, ok := topSet[tag]; ok {
			out = append(out, tag)
		}
	}
	return out
}
