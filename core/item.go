package core

import "github.com/shopkit/rex/pkg/label"

// Item 是推荐链路中的统一承载结构：分数、元信息、标签。
// Labels 用于解释与观测；Score 用于排序决策；Meta 存放商品快照字段
// （category / explanation 等），由各节点按需补充。
type Item struct {
	ID     int64
	Score  float64
	Meta   map[string]any
	Labels map[string]label.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]label.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl label.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]label.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = label.Merge(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// PutMeta 写入元信息，nil map 时惰性初始化。
func (it *Item) PutMeta(key string, v any) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta[key] = v
}

// MetaString 读取字符串元信息，缺失或类型不符时返回空串。
func (it *Item) MetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta[key].(string); ok {
		return s
	}
	return ""
}
