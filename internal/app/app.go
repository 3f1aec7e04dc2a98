package app

import (
	"context"
	"log/slog"

	httpapp "photo_stories/internal/app/http"
	"photo_stories/internal/config"
	"photo_stories/internal/domain/draft"
	"photo_stories/internal/repository"
	access "photo_stories/internal/services/access_service"
	editor "photo_stories/internal/services/editor_service"
	settings "photo_stories/internal/services/settings_service"
	"photo_stories/internal/storage/filestorage"
	"photo_stories/internal/storage/postgresql"
	redisapp "photo_stories/internal/storage/redis"
	httprouters "photo_stories/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
}

func New(log *slog.Logger, cfg *config.Config) *App {
	pool, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		panic(err)
	}

	galleryRepo := repository.NewGalleryRepo(pool)
	photoRepo := repository.NewPhotoRepo(pool)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)
	settingsRepo := repository.NewSettingsRepo(pool)

	editorService := editor.NewEditorService(log, galleryRepo, photoRepo, fileStorage, draft.Options{
		GatedStatuses: cfg.Gallery.GatedStatuses,
		DefaultStatus: cfg.Gallery.DefaultStatus,
	})
	accessService := access.NewAccessService(log, galleryRepo, tokenRepo, cfg.Access.TokenSecret, cfg.Access.TokenTTL, cfg.Gallery.GatedStatuses)
	settingsService := settings.NewSettingsService(log, settingsRepo, cfg.Settings.CacheTTL)

	routers := httprouters.NewRouter(log, editorService, accessService, settingsService)

	server := httpapp.New(log, cfg.HTTP.SessionSecret, cfg.HTTP.Host, cfg.HTTP.Port, routers)

	return &App{
		HTTPServer: server,
	}
}
