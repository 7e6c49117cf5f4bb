package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopkit/rex/core"
)

// Catalog 是基于 core.KeyValueStore 的目录存储适配器。
// 商品存在 hash（field 为 id，value 为 JSON），热度存在共享 zset。
type Catalog struct {
	kv core.KeyValueStore
}

// NewCatalog 创建目录适配器。
func NewCatalog(kv core.KeyValueStore) *Catalog {
	return &Catalog{kv: kv}
}

// AddProduct 分配 id 并写入商品，返回写入后的记录。
func (c *Catalog) AddProduct(ctx context.Context, p core.Product) (core.Product, error) {
	id, err := c.kv.Incr(ctx, keyProductNextID)
	if err != nil {
		return core.Product{}, err
	}
	p.ID = id

	data, err := json.Marshal(p)
	if err != nil {
		return core.Product{}, err
	}
	if err := c.kv.HSet(ctx, keyProducts, strconv.FormatInt(id, 10), data); err != nil {
		return core.Product{}, err
	}
	return p, nil
}

func (c *Catalog) GetAllProducts(ctx context.Context) ([]core.Product, error) {
	fields, err := c.kv.HGetAll(ctx, keyProducts)
	if err != nil {
		return nil, err
	}

	out := make([]core.Product, 0, len(fields))
	for _, raw := range fields {
		var p core.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Catalog) GetProductByID(ctx context.Context, id int64) (core.Product, error) {
	raw, err := c.kv.HGet(ctx, keyProducts, strconv.FormatInt(id, 10))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return core.Product{}, core.ErrProductNotFound
		}
		return core.Product{}, err
	}

	var p core.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return core.Product{}, err
	}
	return p, nil
}

// GetPopularProducts 按交互总数降序返回前 topK 个商品。
// 遍历全目录而不是只读 zset：零交互的商品也要参与排名
// （对应关系库里的 LEFT JOIN 语义），平分按 id 升序。
func (c *Catalog) GetPopularProducts(ctx context.Context, topK int) ([]core.Product, error) {
	products, err := c.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]float64, len(products))
	for _, p := range products {
		score, err := c.kv.ZScore(ctx, keyPopularity, strconv.FormatInt(p.ID, 10))
		if err != nil {
			if core.IsStoreNotFound(err) {
				continue // 没有交互记录，按 0 计
			}
			return nil, err
		}
		counts[p.ID] = score
	}

	sort.SliceStable(products, func(i, j int) bool {
		ci, cj := counts[products[i].ID], counts[products[j].ID]
		if ci != cj {
			return ci > cj
		}
		return products[i].ID < products[j].ID
	})

	if topK > 0 && len(products) > topK {
		products = products[:topK]
	}
	return products, nil
}

var _ core.CatalogStore = (*Catalog)(nil)
