package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photo_stories/internal/domain/models"
	"photo_stories/internal/lib/dateformat"
	"photo_stories/internal/lib/logger/sl"
	"photo_stories/internal/repository"
	"photo_stories/internal/storage"

	"github.com/patrickmn/go-cache"
)

var ErrInvalidSettings = errors.New("invalid settings")

const settingsCacheKey = "app_settings"

// SettingsService отдает настройки приложения через кеш в памяти:
// настройки читаются на каждый рендер, меняются редко.
type SettingsService struct {
	log   *slog.Logger
	repo  repository.SettingsRepository
	cache *cache.Cache
}

func NewSettingsService(log *slog.Logger, repo repository.SettingsRepository, ttl time.Duration) *SettingsService {
	return &SettingsService{
		log:   log,
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

// GetAppSettings возвращает настройки, при отсутствии строки в БД -
// значения по умолчанию.
func (s *SettingsService) GetAppSettings(ctx context.Context) (models.AppSettings, error) {
	const op = "settings.GetAppSettings"

	if cached, ok := s.cache.Get(settingsCacheKey); ok {
		return cached.(models.AppSettings), nil
	}

	settings, err := s.repo.GetAppSettings(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingsNotFound) {
			return models.DefaultAppSettings(), nil
		}
		s.log.Error("failed to get settings", slog.String("op", op), sl.Err(err))

		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.SetDefault(settingsCacheKey, settings)

	return settings, nil
}

// UpdateAppSettings сохраняет настройки и сбрасывает кеш.
func (s *SettingsService) UpdateAppSettings(ctx context.Context, settings models.AppSettings) (models.AppSettings, error) {
	const op = "settings.UpdateAppSettings"

	log := s.log.With(slog.String("op", op))

	if err := validateSettings(settings); err != nil {
		log.Warn("settings rejected", sl.Err(err))

		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateAppSettings(ctx, settings)
	if err != nil {
		log.Error("failed to update settings", sl.Err(err))

		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(settingsCacheKey)

	log.Info("settings updated")

	return updated, nil
}

func validateSettings(settings models.AppSettings) error {
	if settings.ApplicationName == "" {
		return fmt.Errorf("%w: application name must not be empty", ErrInvalidSettings)
	}

	switch settings.LightboxMode {
	case models.LightboxBlack, models.LightboxBlurred:
	default:
		return fmt.Errorf("%w: unknown lightbox mode %q", ErrInvalidSettings, settings.LightboxMode)
	}

	switch settings.DefaultSortOrder {
	case models.SortAlphabetical, models.SortNewestFirst, models.SortOldestFirst:
	default:
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidSettings, settings.DefaultSortOrder)
	}

	if !dateformat.Known(settings.DefaultDateFormat) {
		return fmt.Errorf("%w: unknown date format %q", ErrInvalidSettings, settings.DefaultDateFormat)
	}

	return nil
}
