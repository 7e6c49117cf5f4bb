package core

// Interaction 是一条用户-商品行为记录（view / click / purchase ...）。
// 行为类型是开放字符串集合，不做枚举约束；Timestamp 为 RFC 3339 字符串，
// 只用于排序，不参与打分。记录一经写入不再修改。
type Interaction struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string `json:"user_id" gorm:"not null;index"`
	ProductID int64  `json:"product_id" gorm:"index"`
	Type      string `json:"interaction_type" gorm:"column:interaction_type"`
	Timestamp string `json:"timestamp"`
}

// TableName 指定 gorm 表名，与原始 schema 保持一致。
func (Interaction) TableName() string { return "interactions" }

// DefaultInteractionType 是写入路径上未指定行为类型时的默认值。
const DefaultInteractionType = "view"

// ProductSet 把交互序列折叠成商品 id 集合（自排除判定用）。
func ProductSet(interactions []Interaction) map[int64]struct{} {
	set := make(map[int64]struct{}, len(interactions))
	for _, in := range interactions {
		set[in.ProductID] = struct{}{}
	}
	return set
}
