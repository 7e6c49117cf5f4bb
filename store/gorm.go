package store

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopkit/rex/core"
)

// GormStore 把目录与交互日志落在关系库里（products / interactions 两张表），
// 同时实现 core.CatalogStore 与 core.InteractionStore。
// 默认走 SQLite 单文件，换 Dialector 即可接 Postgres 等。
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore 打开（必要时创建）SQLite 库并迁移表结构。
func NewSQLiteStore(path string) (*GormStore, error) {
	return NewGormStore(sqlite.Open(path))
}

// NewGormStore 用任意 gorm Dialector 构造存储并迁移表结构。
func NewGormStore(dialector gorm.Dialector) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&core.Product{}, &core.Interaction{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Name() string { return "gorm" }

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AddProduct 写入商品，id 由库自增分配。
func (s *GormStore) AddProduct(ctx context.Context, p core.Product) (core.Product, error) {
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return core.Product{}, err
	}
	return p, nil
}

func (s *GormStore) GetAllProducts(ctx context.Context) ([]core.Product, error) {
	var products []core.Product
	err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (s *GormStore) GetProductByID(ctx context.Context, id int64) (core.Product, error) {
	var p core.Product
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Product{}, core.ErrProductNotFound
	}
	return p, err
}

// GetPopularProducts 按交互总数降序返回前 topK 个商品。
// LEFT JOIN 保证零交互商品也参与排名，平分按 id 升序。
func (s *GormStore) GetPopularProducts(ctx context.Context, topK int) ([]core.Product, error) {
	var products []core.Product
	q := s.db.WithContext(ctx).
		Model(&core.Product{}).
		Select("products.*, COUNT(interactions.id) AS interaction_count").
		Joins("LEFT JOIN interactions ON interactions.product_id = products.id").
		Group("products.id").
		Order("interaction_count DESC, products.id ASC")
	if topK > 0 {
		q = q.Limit(topK)
	}
	err := q.Find(&products).Error
	return products, err
}

func (s *GormStore) InsertInteraction(ctx context.Context, in core.Interaction) error {
	return s.db.WithContext(ctx).Create(&in).Error
}

func (s *GormStore) GetUserInteractions(ctx context.Context, userID string, limit int) ([]core.Interaction, error) {
	var list []core.Interaction
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (s *GormStore) GetAllInteractions(ctx context.Context) ([]core.Interaction, error) {
	var list []core.Interaction
	err := s.db.WithContext(ctx).Find(&list).Error
	return list, err
}

var _ core.CatalogStore = (*GormStore)(nil)
var _ core.InteractionStore = (*GormStore)(nil)
