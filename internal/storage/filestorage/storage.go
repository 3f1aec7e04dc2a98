package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	apperrors "photo_stories/internal/storage"
)

// UploadResult результат загрузки одного файла во внешнее хранилище
type UploadResult struct {
	URL   string
	Path  string // относительный путь внутри хранилища
	Bytes int64
}

// FileStorage внешний коллаборатор хранения файлов. Вызывается до
// createPhotos: сначала файл попадает в хранилище, потом метаданные в БД.
type FileStorage interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, subPath string) (UploadResult, error)
	UploadFiles(ctx context.Context, files []*multipart.FileHeader, subPath string) ([]UploadResult, error)
	Delete(ctx context.Context, relPath string) error
	BaseURL() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // базовый каталог хранения (например: "./uploads")
	baseURL string // базовый URL доступа к файлам
	maxSize int64  // максимальный размер одного файла в байтах
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

func (s *LocalFileStorage) UploadFile(ctx context.Context, file *multipart.FileHeader, subPath string) (UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return UploadResult{}, err
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return UploadResult{}, fmt.Errorf("%s: %w", file.Filename, apperrors.ErrFileTooLarge)
	}

	filePath := filepath.Join(s.baseDir, subPath, file.Filename)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return UploadResult{}, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return UploadResult{}, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		_ = os.Remove(filePath)
		return UploadResult{}, ctx.Err()
	}

	relPath := filepath.Join(subPath, file.Filename)

	return UploadResult{
		URL:   s.baseURL + "/" + filepath.ToSlash(relPath),
		Path:  relPath,
		Bytes: size,
	}, nil
}

// UploadFiles загружает пачку файлов в одном порядке с входом.
// При ошибке уже сохраненные файлы пачки удаляются: либо вся пачка,
// либо ничего.
func (s *LocalFileStorage) UploadFiles(ctx context.Context, files []*multipart.FileHeader, subPath string) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(files))

	for _, f := range files {
		res, err := s.UploadFile(ctx, f, subPath)
		if err != nil {
			for _, saved := range results {
				_ = s.Delete(ctx, saved.Path)
			}
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, relPath string) error {
	fullPath := filepath.Join(s.baseDir, relPath)
	return os.Remove(fullPath)
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}
