// Package store 提供 core 存储接口的具体实现。
//
// 接口定义在 core 包（依赖倒置）：
//   - core.Store / core.KeyValueStore: 通用 KV 后端（内存 / Redis）
//   - core.CatalogStore / core.InteractionStore: 领域存储，
//     由 Catalog / Interactions 适配器在 KV 后端上编码，
//     或由 GormStore 直接落关系库
//
// 示例：
//
//	kv := store.NewMemoryStore()
//	catalog := store.NewCatalog(kv)
//	interactions := store.NewInteractions(kv)
package store

// KV key 约定。目录与交互适配器共享热度 zset：写入交互时累计热度，
// 热门查询按它排名。
const (
	keyProducts      = "catalog:products"     // hash: id -> product JSON
	keyProductNextID = "catalog:next_id"      // counter
	keyPopularity    = "catalog:popularity"   // zset: id -> interaction count
	keyAllEvents     = "interactions:all"     // json array
	keyUserEvents    = "interactions:user:"   // + userID, json array
	keyEventNextID   = "interactions:next_id" // counter
)
