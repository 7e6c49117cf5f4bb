package store

import (
	"context"

	"github.com/shopkit/rex/core"
)

// ProductWriter 是目录写入能力，Catalog 与 GormStore 都实现。
type ProductWriter interface {
	core.CatalogStore
	AddProduct(ctx context.Context, p core.Product) (core.Product, error)
}

// DefaultCatalog 返回演示用的种子商品（id 由存储分配）。
func DefaultCatalog() []core.Product {
	return []core.Product{
		{Name: "Wireless Bluetooth Headphones", Category: "Electronics", Price: 79.99,
			Description: "Premium noise-cancelling headphones with 30hr battery", Tags: "audio,wireless,music"},
		{Name: "Yoga Mat Premium", Category: "Sports", Price: 34.99,
			Description: "Eco-friendly non-slip yoga mat with carrying strap", Tags: "fitness,yoga,wellness"},
		{Name: "Coffee Maker Deluxe", Category: "Kitchen", Price: 129.99,
			Description: "Programmable coffee maker with thermal carafe", Tags: "coffee,kitchen,appliances"},
		{Name: "Running Shoes Pro", Category: "Sports", Price: 89.99,
			Description: "Lightweight running shoes with gel cushioning", Tags: "fitness,running,sports"},
		{Name: "Laptop Stand Aluminum", Category: "Electronics", Price: 45.99,
			Description: "Ergonomic adjustable laptop stand for better posture", Tags: "office,ergonomic,accessories"},
		{Name: "Organic Green Tea Set", Category: "Food", Price: 24.99,
			Description: "Premium organic green tea collection, 50 bags", Tags: "tea,organic,beverages"},
		{Name: "Fitness Tracker Watch", Category: "Electronics", Price: 149.99,
			Description: "Smart fitness tracker with heart rate and sleep monitoring", Tags: "fitness,smartwatch,health"},
		{Name: "Stainless Steel Water Bottle", Category: "Sports", Price: 19.99,
			Description: "Insulated water bottle keeps drinks cold for 24hrs", Tags: "hydration,eco-friendly,sports"},
		{Name: "Mechanical Keyboard RGB", Category: "Electronics", Price: 119.99,
			Description: "Gaming mechanical keyboard with customizable RGB lighting", Tags: "gaming,keyboard,accessories"},
		{Name: "Protein Powder Vanilla", Category: "Food", Price: 39.99,
			Description: "Whey protein powder, 2lbs, vanilla flavor", Tags: "fitness,nutrition,supplements"},
	}
}

// SeedDefaultCatalog 在目录为空时写入种子商品，返回实际写入条数。
// 目录非空时不做任何事（幂等）。
func SeedDefaultCatalog(ctx context.Context, w ProductWriter) (int, error) {
	existing, err := w.GetAllProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, p := range DefaultCatalog() {
		if _, err := w.AddProduct(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
