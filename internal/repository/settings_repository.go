package repository

import (
	"context"
	"errors"
	"fmt"

	"photo_stories/internal/domain/models"
	"photo_stories/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type SettingsRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAppSettings возвращает единственную строку глобальных настроек
func (r *SettingsRepo) GetAppSettings(ctx context.Context) (models.AppSettings, error) {
	const op = "repository.SettingsRepo.GetAppSettings"

	query, args, err := r.sb.Select(
		"id",
		"application_name",
		"lightbox_mode",
		"default_sort_order",
		"default_date_format",
		"updated_at",
	).
		From("app_settings").
		Limit(1).
		ToSql()
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	var s models.AppSettings
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.ApplicationName,
		&s.LightboxMode,
		&s.DefaultSortOrder,
		&s.DefaultDateFormat,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AppSettings{}, fmt.Errorf("%s: %w", op, storage.ErrSettingsNotFound)
		}
		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// UpdateAppSettings обновляет настройки и возвращает сохраненное состояние
func (r *SettingsRepo) UpdateAppSettings(ctx context.Context, settings models.AppSettings) (models.AppSettings, error) {
	const op = "repository.SettingsRepo.UpdateAppSettings"

	query, args, err := r.sb.Update("app_settings").
		Set("application_name", settings.ApplicationName).
		Set("lightbox_mode", settings.LightboxMode).
		Set("default_sort_order", settings.DefaultSortOrder).
		Set("default_date_format", settings.DefaultDateFormat).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": settings.ID}).
		Suffix("RETURNING id, application_name, lightbox_mode, default_sort_order, default_date_format, updated_at").
		ToSql()
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	var s models.AppSettings
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.ApplicationName,
		&s.LightboxMode,
		&s.DefaultSortOrder,
		&s.DefaultDateFormat,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AppSettings{}, fmt.Errorf("%s: %w", op, storage.ErrSettingsNotFound)
		}
		return models.AppSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}
