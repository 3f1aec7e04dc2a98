package dto

import (
	"time"

	"github.com/google/uuid"
)

// DraftResponse состояние открытого черновика после операции редактора
type DraftResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
	DateDisplay string          `json:"date_display"`
	Status      string          `json:"status"`
	Passphrase  string          `json:"passphrase,omitempty"` // Открытая фраза текущей сессии, с сервера никогда не приходит
	State       string          `json:"state"`                // clean, dirty или saving
	Photos      []PhotoResponse `json:"photos"`
}

// SaveResponse итог сохранения черновика
type SaveResponse struct {
	PatchSaved bool   `json:"patch_saved"`
	OrderSaved bool   `json:"order_saved"`
	State      string `json:"state"`
}
