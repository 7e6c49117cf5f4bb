// rexd 是推荐引擎的服务进程。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopkit/rex/config"
	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/engine"
	"github.com/shopkit/rex/pipeline"
	"github.com/shopkit/rex/pkg/logging"
	"github.com/shopkit/rex/server"
	"github.com/shopkit/rex/store"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "rexd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, interactions, closeStore, err := buildStores(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed {
		writer, ok := catalog.(store.ProductWriter)
		if ok {
			n, err := store.SeedDefaultCatalog(ctx, writer)
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			if n > 0 {
				log.Infow("seeded sample catalog", "products", n)
			}
		}
	}

	opts := []engine.Option{
		engine.WithLogger(log),
	}
	if cfg.CFWeight > 0 {
		opts = append(opts, engine.WithCFWeight(cfg.CFWeight))
	}
	if cfg.TopK > 0 {
		opts = append(opts, engine.WithTopK(cfg.TopK))
	}
	if cfg.HistoryLimit > 0 {
		opts = append(opts, engine.WithHistoryLimit(cfg.HistoryLimit))
	}
	if cfg.PipelineFile != "" {
		pipeCfg, err := pipeline.LoadFromYAML(cfg.PipelineFile)
		if err != nil {
			return fmt.Errorf("load pipeline: %w", err)
		}
		factory := config.DefaultFactory(config.Deps{Catalog: catalog, Interactions: interactions})
		pipe, err := pipeCfg.BuildPipeline(factory)
		if err != nil {
			return fmt.Errorf("build pipeline: %w", err)
		}
		opts = append(opts, engine.WithPipeline(pipe))
	}

	rec := engine.New(catalog, interactions, opts...)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(rec, log).Router(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", cfg.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildStores 按配置选择存储后端，返回目录存储、交互存储与资源释放函数。
func buildStores(cfg config.App) (core.CatalogStore, core.InteractionStore, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		kv := store.NewMemoryStore()
		return store.NewCatalog(kv), store.NewInteractions(kv), func() { kv.Close() }, nil
	case config.StoreRedis:
		kv, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store.NewCatalog(kv), store.NewInteractions(kv), func() { kv.Close() }, nil
	case config.StoreSQLite:
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, s, func() { s.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend: %q", cfg.Store)
	}
}
