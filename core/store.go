package core

import "context"

// 存储的领域接口，定义在领域层（core），由基础设施层（store）实现。
// 遵循依赖倒置原则：召回/解释/编排只依赖这里的接口，
// 具体后端（内存 / Redis / 关系库）在组装时注入，方便测试替身。

// CatalogStore 提供商品目录的读取能力。
type CatalogStore interface {
	// GetAllProducts 返回全量目录
	GetAllProducts(ctx context.Context) ([]Product, error)

	// GetProductByID 按 id 查询；不存在返回 ErrProductNotFound
	GetProductByID(ctx context.Context, id int64) (Product, error)

	// GetPopularProducts 返回按交互总数降序的前 topK 个商品。
	// 零交互的商品也参与排名（排在有交互的之后，id 升序保证确定性）。
	GetPopularProducts(ctx context.Context, topK int) ([]Product, error)
}

// InteractionStore 提供交互日志的读写能力。
type InteractionStore interface {
	// InsertInteraction 追加一条交互记录（只增不改）
	InsertInteraction(ctx context.Context, in Interaction) error

	// GetUserInteractions 返回某用户最近的交互，最新在前，最多 limit 条
	GetUserInteractions(ctx context.Context, userID string, limit int) ([]Interaction, error)

	// GetAllInteractions 返回全量交互日志（顺序不保证）
	GetAllInteractions(ctx context.Context) ([]Interaction, error)
}

// Store 是通用 KV 存储接口，目录/交互适配器在其上编码领域对象。
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，补充计数、有序集合与哈希操作。
// 有序集合用于热度排名，哈希用于商品元数据。
// 如果后端不支持某些操作，可返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// Incr 对计数器 key 加一并返回新值（id 分配用）
	Incr(ctx context.Context, key string) (int64, error)

	// ZIncrBy 为有序集合成员的分数加 delta（热度累计）
	ZIncrBy(ctx context.Context, key string, delta float64, member string) error

	// ZRevRange 按分数降序获取成员（配合 ZScore 做确定性平分处理）
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数；成员不存在返回 ErrStoreNotFound
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}
