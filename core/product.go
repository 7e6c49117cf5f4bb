package core

import "strings"

// Product 是目录中的商品记录：id 由存储分配，写入后不可变。
// Tags 在存储层以逗号分隔的字符串保存（与关系表的 tags 列对齐），
// 读取时用 TagList 拆分并去除空白。
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Tags        string  `json:"tags"`
}

// TableName 指定 gorm 表名，与原始 schema 保持一致。
func (Product) TableName() string { return "products" }

// TagList 返回拆分并 trim 后的标签序列，空段会被跳过。
// "audio, wireless" -> ["audio", "wireless"]；空字符串 -> nil。
func (p Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
