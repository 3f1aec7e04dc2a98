package storage

import "errors"

var (
	ErrGalleryNotFound  = errors.New("gallery not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrSettingsNotFound = errors.New("app settings not found")
	ErrInvalidCursor    = errors.New("invalid pagination cursor")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrTooManyFiles    = errors.New("too many files in one upload")
	ErrFileNotFound    = errors.New("file not found")
)
