package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Photo представляет одну фотографию внутри галереи
type Photo struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	GalleryID   uuid.UUID  `json:"gallery_id" db:"gallery_id"`
	Title       string     `json:"title,omitempty" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Caption     string     `json:"caption,omitempty" db:"caption"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	ThumbURL    string     `json:"thumb_url" db:"thumb_url"`
	TakenAt     *time.Time `json:"taken_at" db:"taken_at"`         // нормализуется к полуночи UTC, хранится только дата
	Position    int        `json:"position" db:"position"`         // непрерывный индекс с нуля внутри галереи
	FileSize    int64      `json:"file_size,omitempty" db:"file_size"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// DisplayTitle возвращает заголовок с фолбэком на caption,
// как это делает просмотрщик.
func (p Photo) DisplayTitle() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return strings.TrimSpace(p.Caption)
}

// DisplayDescription возвращает описание с фолбэком на caption.
func (p Photo) DisplayDescription() string {
	if d := strings.TrimSpace(p.Description); d != "" {
		return d
	}
	return strings.TrimSpace(p.Caption)
}

// NewPhoto создает фотографию с заполненными обязательными полями.
// Заголовок по умолчанию выводится из имени файла без расширения.
func NewPhoto(galleryID uuid.UUID, filename, imageURL, thumbURL string, fileSize int64) Photo {
	title := filename
	if idx := strings.LastIndex(title, "."); idx > 0 {
		title = title[:idx]
	}

	if thumbURL == "" {
		thumbURL = imageURL
	}

	return Photo{
		ID:        uuid.New(),
		GalleryID: galleryID,
		Title:     title,
		ImageURL:  imageURL,
		ThumbURL:  thumbURL,
		FileSize:  fileSize,
		CreatedAt: time.Now().UTC(),
	}
}
