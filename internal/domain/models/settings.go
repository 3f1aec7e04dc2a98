package models

import (
	"time"

	"github.com/google/uuid"

	"photo_stories/internal/lib/dateformat"
)

// LightboxMode режим затемнения фона лайтбокса
type LightboxMode string

const (
	LightboxBlack   LightboxMode = "BLACK"
	LightboxBlurred LightboxMode = "BLURRED"
)

// SortOrder порядок сортировки галерей по умолчанию
type SortOrder string

const (
	SortAlphabetical SortOrder = "ALPHABETICAL"
	SortNewestFirst  SortOrder = "NEWEST_FIRST"
	SortOldestFirst  SortOrder = "OLDEST_FIRST"
)

// AppSettings глобальные настройки отображения приложения.
// Ядро редактора их не хранит и не загружает само: формат даты
// передается в dateformat параметром из кэша настроек.
type AppSettings struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	ApplicationName   string            `json:"application_name" db:"application_name"`
	LightboxMode      LightboxMode      `json:"lightbox_mode" db:"lightbox_mode"`
	DefaultSortOrder  SortOrder         `json:"default_sort_order" db:"default_sort_order"`
	DefaultDateFormat dateformat.Format `json:"default_date_format" db:"default_date_format"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// DefaultAppSettings настройки до первой записи в БД.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ApplicationName:   "Photo Stories",
		LightboxMode:      LightboxBlack,
		DefaultSortOrder:  SortNewestFirst,
		DefaultDateFormat: dateformat.DefaultFormat,
	}
}
