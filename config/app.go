package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// 存储后端取值。
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// App 是服务进程的应用配置。
type App struct {
	// Addr HTTP 监听地址
	Addr string `yaml:"addr"`
	// Store 存储后端：memory / redis / sqlite
	Store string `yaml:"store"`
	// RedisAddr Redis 地址（store=redis 时生效）
	RedisAddr string `yaml:"redis_addr"`
	// RedisDB Redis 库号
	RedisDB int `yaml:"redis_db"`
	// SQLitePath SQLite 数据库文件路径（store=sqlite 时生效）
	SQLitePath string `yaml:"sqlite_path"`
	// LogMode 日志模式：prod / dev
	LogMode string `yaml:"log_mode"`
	// Seed 启动时向空目录写入示例商品
	Seed bool `yaml:"seed"`
	// PipelineFile 可选的 Pipeline YAML；为空用内置默认链路
	PipelineFile string `yaml:"pipeline_file"`

	// CFWeight 协同分融合权重，0 用默认 1.5
	CFWeight float64 `yaml:"cf_weight"`
	// TopK 最终推荐条数，0 用默认 3
	TopK int `yaml:"top_k"`
	// HistoryLimit 个性化链路读取的历史条数，0 用默认 20
	HistoryLimit int `yaml:"history_limit"`
}

// Default 返回缺省配置。
func Default() App {
	return App{
		Addr:       ":8080",
		Store:      StoreMemory,
		RedisAddr:  "localhost:6379",
		SQLitePath: "rex.db",
		LogMode:    "prod",
		Seed:       true,
	}
}

// Load 读取应用配置：先取缺省值，再叠加 YAML 文件（path 为空则跳过），
// 最后叠加 REX_ 前缀的环境变量。
func Load(path string) (App, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *App) applyEnv() {
	if v := os.Getenv("REX_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("REX_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("REX_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("REX_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("REX_SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("REX_LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("REX_SEED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Seed = b
		}
	}
	if v := os.Getenv("REX_PIPELINE_FILE"); v != "" {
		c.PipelineFile = v
	}
}

func (c *App) validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store)
	}
	return nil
}
