package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"photo_stories/internal/domain/draft"
	"photo_stories/internal/domain/models"
	"photo_stories/internal/lib/logger/sl"
	"photo_stories/internal/lib/passgen"
	"photo_stories/internal/metrics"
	"photo_stories/internal/repository"
	"photo_stories/internal/storage"
	"photo_stories/internal/storage/filestorage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDraftNotOpen    = errors.New("draft is not open")
	ErrGalleryNotFound = errors.New("gallery not found")
	ErrPhotoNotFound   = errors.New("photo not found")
)

const (
	MaxUploadFiles = 5
	MaxUploadSize  = 5 << 20 // 5MB на файл
)

var allowedUploadExt = regexp.MustCompile(`(?i)^\.(jpe?g|png|gif|webp)$`)

// FieldChanges частичная правка скалярных полей черновика. nil-поле
// означает "не трогать".
type FieldChanges struct {
	Title       *string
	Description *string
	DateText    *string
	Status      *string
	Passphrase  *string
}

// DraftSnapshot видимое состояние открытого черновика после операции.
type DraftSnapshot struct {
	ID          uuid.UUID
	Title       string
	Description string
	Date        *time.Time
	Status      string
	Passphrase  string
	State       string
	Photos      []models.Photo
}

// SaveResult итог сохранения: обе части уходят независимо, каждая
// фиксируется по собственному успеху.
type SaveResult struct {
	PatchSaved bool
	OrderSaved bool
	State      string
}

type session struct {
	mu    sync.Mutex
	draft *draft.Draft
}

// EditorService держит открытые черновики галерей в памяти, по одному
// на галерею, и прогоняет их правки через репозитории.
type EditorService struct {
	log       *slog.Logger
	galleries repository.GalleryRepository
	photos    repository.PhotoRepository
	files     filestorage.FileStorage
	opts      draft.Options

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewEditorService(
	log *slog.Logger,
	galleries repository.GalleryRepository,
	photos repository.PhotoRepository,
	files filestorage.FileStorage,
	opts draft.Options,
) *EditorService {
	return &EditorService{
		log:       log,
		galleries: galleries,
		photos:    photos,
		files:     files,
		opts:      opts,
		sessions:  make(map[uuid.UUID]*session),
	}
}

// CreateGallery создает галерею со значениями по умолчанию и сразу
// открывает ее черновик.
func (s *EditorService) CreateGallery(ctx context.Context) (DraftSnapshot, error) {
	const op = "editor.CreateGallery"

	log := s.log.With(slog.String("op", op))

	log.Info("creating gallery")

	id, err := s.galleries.CreateGallery(ctx, models.Gallery{
		Title:       models.DefaultTitle,
		Description: models.DefaultDescription,
		Status:      s.opts.DefaultStatus,
	})
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))

		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery created", slog.String("gallery_id", id.String()))

	return s.OpenDraft(ctx, id)
}

// OpenDraft загружает галерею и открывает ее черновик. Повторное
// открытие отбрасывает несохраненные правки предыдущей сессии.
func (s *EditorService) OpenDraft(ctx context.Context, galleryID uuid.UUID) (DraftSnapshot, error) {
	const op = "editor.OpenDraft"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	gallery, err := s.galleries.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			log.Warn("gallery not found", sl.Err(err))

			return DraftSnapshot{}, fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		log.Error("failed to get gallery", sl.Err(err))

		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	d := draft.FromGallery(gallery, s.opts)

	s.mu.Lock()
	sess, ok := s.sessions[galleryID]
	if !ok {
		sess = &session{}
		s.sessions[galleryID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	sess.draft = d
	snap := s.snapshot(d)
	sess.mu.Unlock()

	log.Info("draft opened")

	return snap, nil
}

// UpdateDraft применяет частичную правку скалярных полей черновика.
func (s *EditorService) UpdateDraft(ctx context.Context, galleryID uuid.UUID, changes FieldChanges) (DraftSnapshot, error) {
	const op = "editor.UpdateDraft"

	sess, err := s.session(galleryID)
	if err != nil {
		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	d := sess.draft
	if changes.Title != nil {
		d.SetTitle(*changes.Title)
	}
	if changes.Description != nil {
		d.SetDescription(*changes.Description)
	}
	if changes.DateText != nil {
		d.SetDateText(*changes.DateText)
	}
	if changes.Status != nil {
		d.SetStatus(*changes.Status)
	}
	if changes.Passphrase != nil {
		d.SetPassphrase(*changes.Passphrase)
	}

	return s.snapshot(d), nil
}

// ReorderPhoto переставляет фотографию на новый индекс внутри черновика.
// Правка локальная, на сервер уходит при Save.
func (s *EditorService) ReorderPhoto(ctx context.Context, galleryID, photoID uuid.UUID, toIndex int) (DraftSnapshot, error) {
	const op = "editor.ReorderPhoto"

	sess, err := s.session(galleryID)
	if err != nil {
		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.draft.Photos().Reorder(photoID, toIndex)

	return s.snapshot(sess.draft), nil
}

// Save валидирует черновик и сохраняет обе его части независимо: патч
// скалярных полей и порядок фотографий. Каждая часть фиксируется по
// собственному успеху, так что неудача одной не откатывает другую.
func (s *EditorService) Save(ctx context.Context, galleryID uuid.UUID) (SaveResult, error) {
	const op = "editor.Save"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	sess, err := s.session(galleryID)
	if err != nil {
		return SaveResult{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	d := sess.draft
	gen, err := d.BeginSave()
	if err != nil {
		sess.mu.Unlock()
		return SaveResult{State: d.State().String()}, fmt.Errorf("%s: %w", op, err)
	}

	patch := d.BuildPatch()
	orderDirty := d.Photos().IsDirty()
	var updates []models.PositionUpdate
	var orderAtSave []uuid.UUID
	if orderDirty {
		updates = d.Photos().PositionUpdates()
		for _, u := range updates {
			orderAtSave = append(orderAtSave, u.PhotoID)
		}
	}
	sess.mu.Unlock()

	if err := hashPatchPassphrase(patch); err != nil {
		sess.mu.Lock()
		d.FailSave(gen)
		state := d.State().String()
		sess.mu.Unlock()

		log.Error("failed to hash passphrase", sl.Err(err))

		return SaveResult{State: state}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("saving draft",
		slog.Int("patch_fields", len(patch)),
		slog.Bool("order_dirty", orderDirty),
	)

	var errs []error
	result := SaveResult{}

	if len(patch) > 0 {
		if err := s.galleries.SaveGalleryPatch(ctx, galleryID, patch); err != nil {
			log.Error("failed to save gallery details", sl.Err(err))
			errs = append(errs, fmt.Errorf("save gallery details: %w", err))
		} else {
			result.PatchSaved = true
		}
	}

	if orderDirty {
		if err := s.galleries.SavePhotoOrder(ctx, updates); err != nil {
			log.Error("failed to save photo order", sl.Err(err))
			errs = append(errs, fmt.Errorf("save photo order: %w", err))
		} else {
			result.OrderSaved = true
		}
	}

	sess.mu.Lock()
	if result.PatchSaved {
		d.Commit(gen, patch)
	}
	if result.OrderSaved && gen == d.Generation() && sameOrder(orderAtSave, d.Photos().Photos()) {
		// порядок не правили, пока шло сохранение
		d.Photos().MarkSaved()
	}
	if len(errs) > 0 {
		d.FailSave(gen)
	} else if !result.PatchSaved {
		// патч был пуст (отправляли только порядок или вовсе ничего),
		// Commit с пустым патчем снимает Saving
		d.Commit(gen, patch)
	}
	result.State = d.State().String()
	sess.mu.Unlock()

	if len(errs) > 0 {
		if result.PatchSaved || result.OrderSaved {
			metrics.DraftSavesTotal.WithLabelValues("partial").Inc()
		} else {
			metrics.DraftSavesTotal.WithLabelValues("failed").Inc()
		}

		return result, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	metrics.DraftSavesTotal.WithLabelValues("success").Inc()

	log.Info("draft saved", slog.String("state", result.State))

	return result, nil
}

// Discard отбрасывает несохраненные правки, перечитывая галерею.
func (s *EditorService) Discard(ctx context.Context, galleryID uuid.UUID) (DraftSnapshot, error) {
	const op = "editor.Discard"

	if _, err := s.session(galleryID); err != nil {
		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.OpenDraft(ctx, galleryID)
}

// CloseDraft закрывает сессию черновика, несохраненные правки теряются.
func (s *EditorService) CloseDraft(galleryID uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, galleryID)
	s.mu.Unlock()
}

// UploadPhotos загружает файлы в хранилище и дописывает их в конец
// коллекции черновика. Не больше пяти файлов за раз, каждый до 5MB,
// только jpg, jpeg, png, gif и webp.
func (s *EditorService) UploadPhotos(ctx context.Context, galleryID uuid.UUID, files []*multipart.FileHeader) (DraftSnapshot, error) {
	const op = "editor.UploadPhotos"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.Int("files", len(files)),
	)

	sess, err := s.session(galleryID)
	if err != nil {
		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(files) == 0 {
		return DraftSnapshot{}, fmt.Errorf("%s: no files provided", op)
	}
	if len(files) > MaxUploadFiles {
		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, storage.ErrTooManyFiles)
	}
	for _, fh := range files {
		if fh.Size > MaxUploadSize {
			return DraftSnapshot{}, fmt.Errorf("%s: %s: %w", op, fh.Filename, storage.ErrFileTooLarge)
		}
		if !allowedUploadExt.MatchString(filepath.Ext(fh.Filename)) {
			return DraftSnapshot{}, fmt.Errorf("%s: %s: %w", op, fh.Filename, storage.ErrInvalidFileType)
		}
	}

	log.Info("uploading photos")

	results, err := s.files.UploadFiles(ctx, files, galleryID.String())
	if err != nil {
		log.Error("failed to upload files", sl.Err(err))

		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	base := sess.draft.Photos().Len()
	newPhotos := make([]models.Photo, 0, len(results))
	for i, res := range results {
		photo := models.NewPhoto(galleryID, files[i].Filename, res.URL, "", res.Bytes)
		photo.Position = base + i
		newPhotos = append(newPhotos, photo)
	}

	created, err := s.photos.CreatePhotos(ctx, newPhotos)
	if err != nil {
		log.Error("failed to persist photos", sl.Err(err))

		for _, res := range results {
			if delErr := s.files.Delete(ctx, res.Path); delErr != nil {
				log.Warn("failed to clean up uploaded file", sl.Err(delErr))
			}
		}

		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	// позиции новых фотографий уже записаны при создании, так что сама
	// по себе дозагрузка порядок не пачкает
	wasDirty := sess.draft.Photos().IsDirty()
	sess.draft.Photos().InsertBatch(created)
	if !wasDirty {
		sess.draft.Photos().MarkSaved()
	}

	metrics.PhotoUploadsTotal.Add(float64(len(created)))

	log.Info("photos uploaded", slog.Int("created", len(created)))

	return s.snapshot(sess.draft), nil
}

// DeletePhoto немедленно удаляет фотографию и закрывает дыру в позициях
// черновика. Обновленные позиции остальных уйдут со следующим Save.
func (s *EditorService) DeletePhoto(ctx context.Context, galleryID, photoID uuid.UUID) (DraftSnapshot, error) {
	const op = "editor.DeletePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("photo_id", photoID.String()),
	)

	sess, err := s.session(galleryID)
	if err != nil {
		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.photos.DeletePhoto(ctx, photoID); err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			log.Warn("photo not found", sl.Err(err))

			return DraftSnapshot{}, fmt.Errorf("%s: %w", op, ErrPhotoNotFound)
		}
		log.Error("failed to delete photo", sl.Err(err))

		return DraftSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.draft.Photos().Remove(photoID)

	log.Info("photo deleted")

	return s.snapshot(sess.draft), nil
}

// MovePhoto переносит фотографию в конец другой галереи. Обе коллекции
// обновляются, если их черновики открыты.
func (s *EditorService) MovePhoto(ctx context.Context, fromGalleryID, photoID, toGalleryID uuid.UUID) error {
	const op = "editor.MovePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", photoID.String()),
		slog.String("from", fromGalleryID.String()),
		slog.String("to", toGalleryID.String()),
	)

	sess, err := s.session(fromGalleryID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	target, err := s.galleries.GetGalleryByID(ctx, toGalleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		log.Error("failed to get target gallery", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	moved, err := s.photos.MovePhoto(ctx, photoID, toGalleryID, len(target.Photos))
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPhotoNotFound)
		}
		log.Error("failed to move photo", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	sess.draft.Photos().MoveOut(photoID)
	sess.mu.Unlock()

	s.mu.Lock()
	targetSess := s.sessions[toGalleryID]
	s.mu.Unlock()
	if targetSess != nil {
		targetSess.mu.Lock()
		wasDirty := targetSess.draft.Photos().IsDirty()
		targetSess.draft.Photos().InsertBatch([]models.Photo{moved})
		if !wasDirty {
			targetSess.draft.Photos().MarkSaved()
		}
		targetSess.mu.Unlock()
	}

	log.Info("photo moved")

	return nil
}

// GetGallery отдает галерею для просмотра, не открывая черновик.
func (s *EditorService) GetGallery(ctx context.Context, galleryID uuid.UUID) (models.Gallery, error) {
	const op = "editor.GetGallery"

	gallery, err := s.galleries.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		s.log.Error("failed to get gallery", slog.String("op", op), sl.Err(err))

		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// ListGalleries возвращает страницу списка галерей после курсора.
func (s *EditorService) ListGalleries(ctx context.Context, after string, pageSize int) (models.GalleryPage, error) {
	const op = "editor.ListGalleries"

	page, err := s.galleries.ListGalleries(ctx, after, pageSize)
	if err != nil {
		s.log.Error("failed to list galleries", slog.String("op", op), sl.Err(err))

		return models.GalleryPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// ArchiveGallery мягко удаляет галерею и закрывает ее черновик.
func (s *EditorService) ArchiveGallery(ctx context.Context, galleryID uuid.UUID) error {
	const op = "editor.ArchiveGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	if err := s.galleries.ArchiveGallery(ctx, galleryID); err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		log.Error("failed to archive gallery", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	s.CloseDraft(galleryID)

	log.Info("gallery archived")

	return nil
}

// RestoreGallery возвращает галерею из архива.
func (s *EditorService) RestoreGallery(ctx context.Context, galleryID uuid.UUID) error {
	const op = "editor.RestoreGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	if err := s.galleries.RestoreGallery(ctx, galleryID); err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		log.Error("failed to restore gallery", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery restored")

	return nil
}

// DeleteGallery физически удаляет галерею вместе с фотографиями.
func (s *EditorService) DeleteGallery(ctx context.Context, galleryID uuid.UUID) error {
	const op = "editor.DeleteGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	if err := s.galleries.DeleteGallery(ctx, galleryID); err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		log.Error("failed to delete gallery", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	s.CloseDraft(galleryID)

	log.Info("gallery deleted")

	return nil
}

// SuggestPassphrase возвращает свежую подсказку парольной фразы.
func (s *EditorService) SuggestPassphrase() string {
	if s.opts.SuggestPassphrase != nil {
		return s.opts.SuggestPassphrase()
	}
	return passgen.Suggest()
}

func (s *EditorService) session(galleryID uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[galleryID]
	if !ok || sess.draft == nil {
		return nil, ErrDraftNotOpen
	}
	return sess, nil
}

func (s *EditorService) snapshot(d *draft.Draft) DraftSnapshot {
	return DraftSnapshot{
		ID:          d.ID(),
		Title:       d.Title(),
		Description: d.Description(),
		Date:        d.Date(),
		Status:      d.Status(),
		Passphrase:  d.Passphrase(),
		State:       d.State().String(),
		Photos:      d.Photos().Photos(),
	}
}

// hashPatchPassphrase заменяет открытую парольную фразу в патче на
// bcrypt-хеш. Пустая строка означает снятие фразы и уходит как nil.
func hashPatchPassphrase(patch models.GalleryPatch) error {
	raw, ok := patch[draft.FieldPassphrase]
	if !ok {
		return nil
	}

	phrase, _ := raw.(string)
	if phrase == "" {
		patch[draft.FieldPassphrase] = nil
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(phrase), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	patch[draft.FieldPassphrase] = hash

	return nil
}

func sameOrder(saved []uuid.UUID, current []models.Photo) bool {
	if len(saved) != len(current) {
		return false
	}
	for i := range saved {
		if saved[i] != current[i].ID {
			return false
		}
	}
	return true
}
