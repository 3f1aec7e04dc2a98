package dto

import (
	"time"

	"github.com/google/uuid"

	"photo_stories/internal/domain/models"
)

// PhotoResponse представляет собой DTO фотографии в галерее
type PhotoResponse struct {
	ID          uuid.UUID  `json:"id"`
	GalleryID   uuid.UUID  `json:"gallery_id"`
	Title       string     `json:"title"`       // Отображаемый заголовок (подпись при ее наличии)
	Description string     `json:"description"` // Отображаемое описание
	ImageURL    string     `json:"image_url"`
	ThumbURL    string     `json:"thumb_url"` // При отсутствии миниатюры совпадает с image_url
	TakenAt     *time.Time `json:"taken_at"`
	Position    int        `json:"position"`
	FileSize    int64      `json:"file_size"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewPhotoResponse(p models.Photo) PhotoResponse {
	return PhotoResponse{
		ID:          p.ID,
		GalleryID:   p.GalleryID,
		Title:       p.DisplayTitle(),
		Description: p.DisplayDescription(),
		ImageURL:    p.ImageURL,
		ThumbURL:    p.ThumbURL,
		TakenAt:     p.TakenAt,
		Position:    p.Position,
		FileSize:    p.FileSize,
		CreatedAt:   p.CreatedAt,
	}
}
