package dto

import (
	"time"

	"github.com/google/uuid"

	"photo_stories/internal/domain/models"
	"photo_stories/internal/lib/dateformat"
)

// GalleryResponse представляет собой DTO для ответа с данными о галерее
type GalleryResponse struct {
	ID          uuid.UUID       `json:"id"`           // Уникальный идентификатор галереи
	Title       string          `json:"title"`        // Название галереи
	Description string          `json:"description"`  // Описание галереи
	Date        *time.Time      `json:"date"`         // Дата съемки (канонический момент)
	DateDisplay string          `json:"date_display"` // Дата съемки в настроенном формате отображения
	Status      string          `json:"status"`       // Статус галереи (например, "draft", "published", "gated")
	Gated       bool            `json:"gated"`        // Требуется ли кодовая фраза для просмотра
	CreatedAt   time.Time       `json:"created_at"`   // Дата и время создания галереи
	UpdatedAt   time.Time       `json:"updated_at"`   // Дата и время последнего обновления
	ArchivedAt  *time.Time      `json:"archived_at"`  // Дата архивирования (nil для активных)
	Photos      []PhotoResponse `json:"photos"`       // Фотографии в порядке отображения
}

// NewGalleryResponse собирает ответ, форматируя дату в переданном формате.
// Хеш кодовой фразы наружу не отдается никогда.
func NewGalleryResponse(g models.Gallery, format dateformat.Format) GalleryResponse {
	photos := make([]PhotoResponse, len(g.Photos))
	for i, p := range g.Photos {
		photos[i] = NewPhotoResponse(p)
	}

	return GalleryResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Date:        g.Date,
		DateDisplay: dateformat.FormatInstant(g.Date, format),
		Status:      g.Status,
		Gated:       len(g.PassphraseHash) > 0,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		ArchivedAt:  g.ArchivedAt,
		Photos:      photos,
	}
}

// GallerySummaryResponse строка списка галерей
type GallerySummaryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Date        *time.Time `json:"date"`
	DateDisplay string     `json:"date_display"`
	PhotoCount  int        `json:"photo_count"`
	CoverURL    string     `json:"cover_url"`
	CreatedAt   time.Time  `json:"created_at"`
}

// GalleryPageResponse страница списка с курсором для продолжения
type GalleryPageResponse struct {
	Items       []GallerySummaryResponse `json:"items"`
	EndCursor   string                   `json:"end_cursor,omitempty"`
	HasNextPage bool                     `json:"has_next_page"`
}

func NewGalleryPageResponse(page models.GalleryPage, format dateformat.Format) GalleryPageResponse {
	items := make([]GallerySummaryResponse, len(page.Items))
	for i, s := range page.Items {
		items[i] = GallerySummaryResponse{
			ID:          s.ID,
			Title:       s.Title,
			Status:      s.Status,
			Date:        s.Date,
			DateDisplay: dateformat.FormatInstant(s.Date, format),
			PhotoCount:  s.PhotoCount,
			CoverURL:    s.CoverURL,
			CreatedAt:   s.CreatedAt,
		}
	}

	return GalleryPageResponse{
		Items:       items,
		EndCursor:   page.EndCursor,
		HasNextPage: page.HasNextPage,
	}
}
