package models

import (
	"time"

	"github.com/google/uuid"
)

// Gallery представляет собой модель галереи
type Gallery struct {
	ID             uuid.UUID  `json:"id"`               // Уникальный идентификатор галереи
	Title          string     `json:"title"`            // Заголовок галереи
	Description    string     `json:"description"`      // Описание галереи
	Date           *time.Time `json:"date"`             // Дата события, может быть nil ("дата не задана")
	Status         string     `json:"status"`           // Статус галереи; набор значений задается конфигурацией, не кодом
	PassphraseHash []byte     `json:"-"`                // bcrypt-хэш парольной фразы для закрытых галерей
	CreatedAt      time.Time  `json:"created_at"`       // Дата создания
	UpdatedAt      time.Time  `json:"updated_at"`       // Дата последнего обновления
	ArchivedAt     *time.Time `json:"archived_at"`      // Дата архивации (мягкое удаление), nil для активных
	Photos         []Photo    `json:"photos,omitempty"` // Фотографии в порядке position
}

// GallerySummary облегченная проекция галереи для списков с пагинацией
type GallerySummary struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Date       *time.Time `json:"date"`
	PhotoCount int        `json:"photo_count"`
	CoverURL   string     `json:"cover_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// GalleryPatch минимальный набор измененных полей для сохранения.
// Ключи: title, description, date, status, passphrase. Присутствует
// только то, что пользователь реально менял; значение date может быть
// nil (снятие даты). Парольная фраза попадает сюда лишь когда ее явно
// редактировали, замаскированное значение назад не отправляется.
type GalleryPatch map[string]interface{}

// Has сообщает, входит ли поле в патч.
func (p GalleryPatch) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// GalleryPage страница списка галерей при курсорной пагинации
type GalleryPage struct {
	Items       []GallerySummary `json:"items"`
	EndCursor   string           `json:"end_cursor"`
	HasNextPage bool             `json:"has_next_page"`
}

// PositionUpdate одна позиция в батче сохранения порядка фотографий
type PositionUpdate struct {
	PhotoID  uuid.UUID `json:"photo_id"`
	Position int       `json:"position"`
}

const (
	// DefaultTitle подставляется при создании новой галереи
	DefaultTitle = "Untitled Gallery"
	// DefaultDescription плейсхолдер описания новой галереи
	DefaultDescription = "No description provided."
)
