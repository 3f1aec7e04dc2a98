package request

// UpdateDraftRequest частичная правка полей черновика. Отсутствующее
// поле не трогается, присутствующее применяется даже пустым.
type UpdateDraftRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"` // Свободный ввод: epoch millis, RFC3339 или YYYY-MM-DD
	Status      *string `json:"status,omitempty"`
	Passphrase  *string `json:"passphrase,omitempty"`
}

type ReorderPhotoRequest struct {
	PhotoID string `json:"photo_id" validate:"required,uuid"`
	ToIndex int    `json:"to_index" validate:"min=0"`
}

type MovePhotoRequest struct {
	ToGalleryID string `json:"to_gallery_id" validate:"required,uuid"`
}

type VerifyAccessRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}
