package repository

import (
	"context"
	"time"

	"photo_stories/internal/domain/models"

	"github.com/google/uuid"
)

// GalleryRepository контракт шлюза персистентности для галерей.
// Транспорт-агностичен: сервисам все равно, стоит ли за ним SQL или
// удаленный API.
type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery models.Gallery) (uuid.UUID, error)
	GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	SaveGalleryPatch(ctx context.Context, id uuid.UUID, patch models.GalleryPatch) error
	SavePhotoOrder(ctx context.Context, updates []models.PositionUpdate) error
	ArchiveGallery(ctx context.Context, id uuid.UUID) error
	RestoreGallery(ctx context.Context, id uuid.UUID) error
	DeleteGallery(ctx context.Context, id uuid.UUID) error
	ListGalleries(ctx context.Context, after string, pageSize int) (models.GalleryPage, error)
}

type PhotoRepository interface {
	CreatePhotos(ctx context.Context, photos []models.Photo) ([]models.Photo, error)
	MovePhoto(ctx context.Context, photoID, toGalleryID uuid.UUID, position int) (models.Photo, error)
	DeletePhoto(ctx context.Context, photoID uuid.UUID) error
	UpdatePhotoMeta(ctx context.Context, photo models.Photo) error
}

// TokenRepository хранилище токенов доступа к закрытым галереям.
// Инвариант: не больше одного токена на галерею, новый затирает старый.
type TokenRepository interface {
	SaveGalleryToken(ctx context.Context, galleryID, token string, exp time.Duration) error
	GetGalleryToken(ctx context.Context, galleryID string) (string, error)
	DeleteGalleryToken(ctx context.Context, galleryID string) error
}

type SettingsRepository interface {
	GetAppSettings(ctx context.Context) (models.AppSettings, error)
	UpdateAppSettings(ctx context.Context, settings models.AppSettings) (models.AppSettings, error)
}
