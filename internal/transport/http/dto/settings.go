package dto

import (
	"photo_stories/internal/domain/models"
)

// SettingsResponse настройки отображения приложения
type SettingsResponse struct {
	ApplicationName   string `json:"application_name"`
	LightboxMode      string `json:"lightbox_mode"`
	DefaultSortOrder  string `json:"default_sort_order"`
	DefaultDateFormat string `json:"default_date_format"`
}

func NewSettingsResponse(s models.AppSettings) SettingsResponse {
	return SettingsResponse{
		ApplicationName:   s.ApplicationName,
		LightboxMode:      string(s.LightboxMode),
		DefaultSortOrder:  string(s.DefaultSortOrder),
		DefaultDateFormat: string(s.DefaultDateFormat),
	}
}

// UpdateSettingsRequest запрос на изменение настроек
type UpdateSettingsRequest struct {
	ApplicationName   string `json:"application_name" validate:"required"`
	LightboxMode      string `json:"lightbox_mode" validate:"required,oneof=BLACK BLURRED"`
	DefaultSortOrder  string `json:"default_sort_order" validate:"required,oneof=ALPHABETICAL NEWEST_FIRST OLDEST_FIRST"`
	DefaultDateFormat string `json:"default_date_format" validate:"required"`
}
