package repository

import (
	"context"
	"errors"
	"fmt"

	"photo_stories/internal/domain/models"
	"photo_stories/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PhotoRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewPhotoRepo(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePhotos вставляет пачку фотографий после завершения загрузки
// файлов во внешнее хранилище. Позиции приходят уже назначенными.
func (r *PhotoRepo) CreatePhotos(ctx context.Context, photos []models.Photo) ([]models.Photo, error) {
	const op = "repository.PhotoRepo.CreatePhotos"

	if len(photos) == 0 {
		return nil, nil
	}

	builder := r.sb.Insert("photos").
		Columns(
			"id",
			"gallery_id",
			"title",
			"description",
			"caption",
			"image_url",
			"thumb_url",
			"taken_at",
			"position",
			"file_size",
			"created_at",
		)

	for _, p := range photos {
		builder = builder.Values(
			p.ID,
			p.GalleryID,
			p.Title,
			p.Description,
			p.Caption,
			p.ImageURL,
			p.ThumbURL,
			p.TakenAt,
			p.Position,
			p.FileSize,
			p.CreatedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

// MovePhoto перевешивает фотографию в другую галерею. Позиции в обеих
// коллекциях пересчитывает вызывающий: у него в руках оба Set.
func (r *PhotoRepo) MovePhoto(ctx context.Context, photoID, toGalleryID uuid.UUID, position int) (models.Photo, error) {
	const op = "repository.PhotoRepo.MovePhoto"

	query, args, err := r.sb.Update("photos").
		Set("gallery_id", toGalleryID).
		Set("position", position).
		Where(squirrel.Eq{"id": photoID}).
		Suffix("RETURNING id, gallery_id, title, description, caption, image_url, thumb_url, taken_at, position, file_size, created_at").
		ToSql()
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	var p models.Photo
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.GalleryID,
		&p.Title,
		&p.Description,
		&p.Caption,
		&p.ImageURL,
		&p.ThumbURL,
		&p.TakenAt,
		&p.Position,
		&p.FileSize,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, fmt.Errorf("%s: %w", op, storage.ErrPhotoNotFound)
		}
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// DeletePhoto удаляет фотографию
func (r *PhotoRepo) DeletePhoto(ctx context.Context, photoID uuid.UUID) error {
	const op = "repository.PhotoRepo.DeletePhoto"

	query, args, err := r.sb.Delete("photos").
		Where(squirrel.Eq{"id": photoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdatePhotoMeta обновляет описательные метаданные фотографии
func (r *PhotoRepo) UpdatePhotoMeta(ctx context.Context, photo models.Photo) error {
	const op = "repository.PhotoRepo.UpdatePhotoMeta"

	query, args, err := r.sb.Update("photos").
		Set("title", photo.Title).
		Set("description", photo.Description).
		Set("caption", photo.Caption).
		Set("taken_at", photo.TakenAt).
		Where(squirrel.Eq{"id": photo.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPhotoNotFound)
	}

	return nil
}
