// Package main Karyawan Content API
// @title Karyawan Content API
// @version 1.0
// @description Content-management backend for the Karyawan online magazine: articles, comments, bookmarks, and editorial settings
// @contact.name API Support
// @contact.email support@karyawanmag.com
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/karyawanmag/content-api/docs"
	"github.com/karyawanmag/content-api/internal/auth"
	"github.com/karyawanmag/content-api/internal/media"
	"github.com/karyawanmag/content-api/internal/router"
	"github.com/karyawanmag/content-api/internal/server"
	"github.com/karyawanmag/content-api/internal/service"
	"github.com/karyawanmag/content-api/internal/storage"
	"github.com/karyawanmag/content-api/internal/storage/es"
	"github.com/karyawanmag/content-api/internal/storage/inmem"
	"github.com/karyawanmag/content-api/internal/storage/pg"
	pkgserver "github.com/karyawanmag/content-api/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	ctx := context.Background()

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	mediaStore, err := media.NewCloudinaryStore(media.CloudinaryConfig{
		URL:    cfg.Media.CloudinaryURL,
		Folder: cfg.Media.Folder,
	})
	if err != nil {
		slog.Error("Failed to create media store", "error", err)
		os.Exit(1)
	}

	articleOpts := []service.ArticleOption{service.WithMediaDomain(cfg.Media.Domain)}
	if cfg.Search.Enabled {
		esCfg := es.ClientConfig{
			Addresses: cfg.Search.Addresses,
			IndexName: cfg.Search.IndexName,
			Username:  cfg.Search.Username,
			Password:  cfg.Search.Password,
		}
		indexer, err := es.NewIndexer(ctx, esCfg)
		if err != nil {
			slog.Error("Failed to create search indexer", "error", err)
			os.Exit(1)
		}
		searcher, err := es.NewSearcher(esCfg)
		if err != nil {
			slog.Error("Failed to create searcher", "error", err)
			os.Exit(1)
		}
		articleOpts = append(articleOpts, service.WithSearchIndex(indexer, searcher))
	}

	authSvc := auth.NewService(store, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	articles := service.NewArticleService(store, mediaStore, articleOpts...)
	accounts := service.NewAccountService(store, authSvc)
	comments := service.NewCommentService(store)
	bookmarks := service.NewBookmarkService(store)
	settings := service.NewSettingsService(store)

	s := server.NewServer(echo.New(), sCfg).
		SetupHealthChecks(pkgserver.NewPingHealthChecker(store.Ping)).
		SetupOpenApi()

	authmw := auth.Middleware(authSvc)

	router.NewAuthRouter(s.Echo, accounts, authmw).Bind()
	router.NewArticleRouter(s.Echo, articles, settings, authmw).Bind()
	router.NewCommentRouter(s.Echo, comments, authmw).Bind()
	router.NewBookmarkRouter(s.Echo, bookmarks, authmw).Bind()
	router.NewSettingsRouter(s.Echo, settings, authmw, auth.RequireAdmin(), auth.RequireSuperAdmin()).Bind()

	slog.Info("Starting content API", "port", sCfg.Port, "storage", cfg.StorageType, "search", cfg.Search.Enabled)

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg *ContentAPIConfig) (storage.Store, error) {
	switch cfg.StorageType {
	case StorageTypeInMem:
		slog.Warn("Using in-memory storage; data will not survive restarts")
		return inmem.NewStore(), nil
	default:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.Postgres.ConnectionString})
		if err != nil {
			return nil, err
		}
		return pg.NewStore(pool), nil
	}
}
