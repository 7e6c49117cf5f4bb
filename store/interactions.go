package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopkit/rex/core"
)

// Interactions 是基于 core.KeyValueStore 的交互日志适配器。
// 全量日志与每用户日志各存一份 JSON 数组（只增不改），
// 写入时同步累计商品热度 zset。
type Interactions struct {
	kv core.KeyValueStore
}

// NewInteractions 创建交互日志适配器。
func NewInteractions(kv core.KeyValueStore) *Interactions {
	return &Interactions{kv: kv}
}

func (s *Interactions) InsertInteraction(ctx context.Context, in core.Interaction) error {
	id, err := s.kv.Incr(ctx, keyEventNextID)
	if err != nil {
		return err
	}
	in.ID = id

	if err := s.appendTo(ctx, keyAllEvents, in); err != nil {
		return err
	}
	if err := s.appendTo(ctx, keyUserEvents+in.UserID, in); err != nil {
		return err
	}
	// 热度累计，热门兜底按它排名
	return s.kv.ZIncrBy(ctx, keyPopularity, 1, strconv.FormatInt(in.ProductID, 10))
}

func (s *Interactions) appendTo(ctx context.Context, key string, in core.Interaction) error {
	list, err := s.readList(ctx, key)
	if err != nil {
		return err
	}
	list = append(list, in)
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, data)
}

func (s *Interactions) readList(ctx context.Context, key string) ([]core.Interaction, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var list []core.Interaction
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetUserInteractions 返回某用户最近的交互，最新在前，最多 limit 条。
func (s *Interactions) GetUserInteractions(ctx context.Context, userID string, limit int) ([]core.Interaction, error) {
	list, err := s.readList(ctx, keyUserEvents+userID)
	if err != nil {
		return nil, err
	}

	// 按时间戳降序（RFC 3339 字符串可直接比较），同刻按写入序新在前
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Timestamp != list[j].Timestamp {
			return list[i].Timestamp > list[j].Timestamp
		}
		return list[i].ID > list[j].ID
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *Interactions) GetAllInteractions(ctx context.Context) ([]core.Interaction, error) {
	return s.readList(ctx, keyAllEvents)
}

var _ core.InteractionStore = (*Interactions)(nil)
