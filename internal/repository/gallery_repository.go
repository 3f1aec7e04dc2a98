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
	"github.com/lib/pq"
)

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// колонки, которые разрешено менять через патч; ключ "passphrase"
// приходит из черновика уже в виде bcrypt-хэша
var patchColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"date":        "date",
	"status":      "status",
	"passphrase":  "passphrase_hash",
}

// CreateGallery создает новую галерею и возвращает её ID
func (r *GalleryRepo) CreateGallery(ctx context.Context, gallery models.Gallery) (uuid.UUID, error) {
	const op = "repository.GalleryRepo.CreateGallery"

	query, args, err := r.sb.Insert("galleries").
		Columns(
			"title",
			"description",
			"date",
			"status",
			"passphrase_hash",
		).
		Values(
			gallery.Title,
			gallery.Description,
			gallery.Date,
			gallery.Status,
			gallery.PassphraseHash,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetGalleryByID возвращает галерею вместе с фотографиями в порядке position
func (r *GalleryRepo) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GetGalleryByID"

	query, args, err := r.sb.Select(
		"id",
		"title",
		"description",
		"date",
		"status",
		"passphrase_hash",
		"created_at",
		"updated_at",
		"archived_at",
	).
		From("galleries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	var gallery models.Gallery
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&gallery.ID,
		&gallery.Title,
		&gallery.Description,
		&gallery.Date,
		&gallery.Status,
		&gallery.PassphraseHash,
		&gallery.CreatedAt,
		&gallery.UpdatedAt,
		&gallery.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery.Photos, err = r.galleryPhotos(ctx, id)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

func (r *GalleryRepo) galleryPhotos(ctx context.Context, galleryID uuid.UUID) ([]models.Photo, error) {
	query, args, err := r.sb.Select(
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
	).
		From("photos").
		Where(squirrel.Eq{"gallery_id": galleryID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var p models.Photo
		err := rows.Scan(
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
			return nil, err
		}
		photos = append(photos, p)
	}

	return photos, rows.Err()
}

// SaveGalleryPatch обновляет только поля, присутствующие в патче
func (r *GalleryRepo) SaveGalleryPatch(ctx context.Context, id uuid.UUID, patch models.GalleryPatch) error {
	const op = "repository.GalleryRepo.SaveGalleryPatch"

	if len(patch) == 0 {
		return nil
	}

	builder := r.sb.Update("galleries").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	for field, value := range patch {
		column, ok := patchColumns[field]
		if !ok {
			return fmt.Errorf("%s: unknown patch field %q", op, field)
		}
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

// SavePhotoOrder применяет батч позиций одним запросом. Батч шлется
// один раз на действие Save, а не на каждый drag-жест.
func (r *GalleryRepo) SavePhotoOrder(ctx context.Context, updates []models.PositionUpdate) error {
	const op = "repository.GalleryRepo.SavePhotoOrder"

	if len(updates) == 0 {
		return nil
	}

	ids := make([]string, len(updates))
	positions := make([]int64, len(updates))
	for i, u := range updates {
		ids[i] = u.PhotoID.String()
		positions[i] = int64(u.Position)
	}

	query := `
		UPDATE photos AS p
		SET position = u.position
		FROM (SELECT unnest($1::uuid[]) AS id, unnest($2::bigint[]) AS position) AS u
		WHERE p.id = u.id`

	_, err := r.db.Exec(ctx, query, pq.Array(ids), pq.Array(positions))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ArchiveGallery мягкое удаление: галерея помечается архивной
func (r *GalleryRepo) ArchiveGallery(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.ArchiveGallery"
	return r.setArchived(ctx, op, id, squirrel.Expr("NOW()"))
}

// RestoreGallery возвращает галерею из архива
func (r *GalleryRepo) RestoreGallery(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.RestoreGallery"
	return r.setArchived(ctx, op, id, nil)
}

func (r *GalleryRepo) setArchived(ctx context.Context, op string, id uuid.UUID, value interface{}) error {
	query, args, err := r.sb.Update("galleries").
		Set("archived_at", value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

// DeleteGallery жесткое удаление галереи вместе с фотографиями
func (r *GalleryRepo) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteGallery"

	query, args, err := r.sb.Delete("galleries").
		Where(squirrel.Eq{"id": id}).
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

// ListGalleries страница списка галерей. Курсорная пагинация только
// вперед: after - id последней галереи предыдущей страницы.
func (r *GalleryRepo) ListGalleries(ctx context.Context, after string, pageSize int) (models.GalleryPage, error) {
	const op = "repository.GalleryRepo.ListGalleries"

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	builder := r.sb.Select(
		"g.id",
		"g.title",
		"g.status",
		"g.date",
		"g.created_at",
		"(SELECT COUNT(*) FROM photos p WHERE p.gallery_id = g.id) AS photo_count",
		"COALESCE((SELECT p.thumb_url FROM photos p WHERE p.gallery_id = g.id ORDER BY p.position LIMIT 1), '') AS cover_url",
	).
		From("galleries g").
		Where("g.archived_at IS NULL")

	if after != "" {
		cursorID, err := uuid.Parse(after)
		if err != nil {
			return models.GalleryPage{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}
		builder = builder.Where(
			"(g.created_at, g.id) < (SELECT created_at, id FROM galleries WHERE id = ?)",
			cursorID,
		)
	}

	// запрашиваем на одну строку больше, чтобы узнать hasNextPage
	query, args, err := builder.
		OrderBy("g.created_at DESC", "g.id DESC").
		Limit(uint64(pageSize + 1)).
		ToSql()
	if err != nil {
		return models.GalleryPage{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return models.GalleryPage{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.GallerySummary
	for rows.Next() {
		var s models.GallerySummary
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Status,
			&s.Date,
			&s.CreatedAt,
			&s.PhotoCount,
			&s.CoverURL,
		)
		if err != nil {
			return models.GalleryPage{}, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return models.GalleryPage{}, fmt.Errorf("%s: %w", op, err)
	}

	page := models.GalleryPage{}
	if len(items) > pageSize {
		page.HasNextPage = true
		items = items[:pageSize]
	}
	page.Items = items
	if len(items) > 0 {
		page.EndCursor = items[len(items)-1].ID.String()
	}

	return page, nil
}
