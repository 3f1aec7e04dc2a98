package http

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"errors"

	"photo_stories/internal/domain/draft"
	"photo_stories/internal/domain/models"
	"photo_stories/internal/lib/dateformat"
	"photo_stories/internal/lib/logger/sl"
	editor "photo_stories/internal/services/editor_service"
	"photo_stories/internal/transport/http/dto"
	"photo_stories/internal/transport/http/dto/request"
	"photo_stories/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "photo_stories/docs"
)

type EditorService interface {
	CreateGallery(ctx context.Context) (editor.DraftSnapshot, error)
	OpenDraft(ctx context.Context, galleryID uuid.UUID) (editor.DraftSnapshot, error)
	UpdateDraft(ctx context.Context, galleryID uuid.UUID, changes editor.FieldChanges) (editor.DraftSnapshot, error)
	ReorderPhoto(ctx context.Context, galleryID, photoID uuid.UUID, toIndex int) (editor.DraftSnapshot, error)
	Save(ctx context.Context, galleryID uuid.UUID) (editor.SaveResult, error)
	Discard(ctx context.Context, galleryID uuid.UUID) (editor.DraftSnapshot, error)
	UploadPhotos(ctx context.Context, galleryID uuid.UUID, files []*multipart.FileHeader) (editor.DraftSnapshot, error)
	DeletePhoto(ctx context.Context, galleryID, photoID uuid.UUID) (editor.DraftSnapshot, error)
	MovePhoto(ctx context.Context, fromGalleryID, photoID, toGalleryID uuid.UUID) error
	SuggestPassphrase() string
	GetGallery(ctx context.Context, galleryID uuid.UUID) (models.Gallery, error)
	ListGalleries(ctx context.Context, after string, pageSize int) (models.GalleryPage, error)
	ArchiveGallery(ctx context.Context, galleryID uuid.UUID) error
	RestoreGallery(ctx context.Context, galleryID uuid.UUID) error
	DeleteGallery(ctx context.Context, galleryID uuid.UUID) error
}

type AccessService interface {
	IsGated(status string) bool
	Verify(ctx context.Context, galleryID uuid.UUID, passphrase string) (models.AccessGrant, error)
	Check(ctx context.Context, galleryID uuid.UUID, token string) error
	Revoke(ctx context.Context, galleryID uuid.UUID) error
}

type SettingsService interface {
	GetAppSettings(ctx context.Context) (models.AppSettings, error)
	UpdateAppSettings(ctx context.Context, settings models.AppSettings) (models.AppSettings, error)
}

type Routers struct {
	log             *slog.Logger
	EditorService   EditorService
	AccessService   AccessService
	SettingsService SettingsService
}

func NewRouter(log *slog.Logger, editorService EditorService, accessService AccessService, settingsService SettingsService) *Routers {
	return &Routers{
		log:             log,
		EditorService:   editorService,
		AccessService:   accessService,
		SettingsService: settingsService,
	}
}

// GetGallery godoc
// @Summary Получить галерею
// @Description Возвращает галерею с фотографиями. Для закрытой галереи нужен Bearer-токен из /verify.
// @Tags Галереи
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Success 200 {object} dto.GalleryResponse
// @Failure 400 {object} response.ErrorResponse "Невалидный UUID"
// @Failure 401 {object} response.ErrorResponse "Нет действующего токена доступа"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /api/v1/galleries/{id} [get]
func (r *Routers) GetGallery(c echo.Context) error {
	const op = "http.routers.GetGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	gallery, err := r.EditorService.GetGallery(c.Request().Context(), galleryID)
	if err != nil {
		if errors.Is(err, editor.ErrGalleryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}
		log.Error("failed to get gallery", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to get gallery"})
	}

	if r.AccessService.IsGated(gallery.Status) {
		if err := r.AccessService.Check(c.Request().Context(), galleryID, bearerToken(c)); err != nil {
			log.Info("access denied", slog.String("gallery_id", galleryID.String()))
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}
	}

	return c.JSON(http.StatusOK, dto.NewGalleryResponse(gallery, r.dateFormat(c)))
}

// VerifyAccess godoc
// @Summary Проверить кодовую фразу
// @Description Сверяет кодовую фразу закрытой галереи. При совпадении возвращает токен доступа, при несовпадении ok=false без ошибки.
// @Tags Галереи
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body request.VerifyAccessRequest true "Кодовая фраза"
// @Success 200 {object} response.Response{data=models.AccessGrant}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /api/v1/galleries/{id}/verify [post]
func (r *Routers) VerifyAccess(c echo.Context) error {
	const op = "http.routers.VerifyAccess"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req request.VerifyAccessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	grant, err := r.AccessService.Verify(c.Request().Context(), galleryID, req.Passphrase)
	if err != nil {
		if errors.Is(err, editor.ErrGalleryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}
		log.Error("verify failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "verify failed"})
	}

	if grant.OK && grant.Token != "" {
		sess, _ := session.Get("viewer", c)
		sess.Values["last_gallery"] = galleryID.String()
		sess.Save(c.Request(), c.Response())
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(grant))
}

// RevokeAccess godoc
// @Summary Отозвать токен доступа
// @Tags Галереи
// @Param id path string true "UUID галереи" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/verify [delete]
func (r *Routers) RevokeAccess(c echo.Context) error {
	const op = "http.routers.RevokeAccess"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	if err := r.AccessService.Revoke(c.Request().Context(), galleryID); err != nil {
		log.Error("failed to revoke access", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to revoke access"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListGalleries godoc
// @Summary Список галерей
// @Description Курсорная пагинация: end_cursor предыдущей страницы передается в after. http://localhost:8080/api/v1/galleries?after=...&page_size=20
// @Tags Галереи
// @Produce json
// @Param after query string false "Курсор предыдущей страницы"
// @Param page_size query int false "Размер страницы" default(20)
// @Success 200 {object} dto.GalleryPageResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	const op = "http.routers.ListGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	after := c.QueryParam("after")

	pageSize, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	page, err := r.EditorService.ListGalleries(c.Request().Context(), after, pageSize)
	if err != nil {
		log.Error("failed to list galleries", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to list galleries"})
	}

	return c.JSON(http.StatusOK, dto.NewGalleryPageResponse(page, r.dateFormat(c)))
}

// CreateGallery godoc
// @Summary Создать галерею
// @Description Создает галерею со значениями по умолчанию и сразу открывает ее черновик
// @Tags Черновики
// @Produce json
// @Success 201 {object} dto.DraftResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	const op = "http.routers.CreateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	snap, err := r.EditorService.CreateGallery(c.Request().Context())
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to create gallery"})
	}

	log.Info("gallery created", slog.String("gallery_id", snap.ID.String()))

	return c.JSON(http.StatusCreated, r.draftResponse(c, snap))
}

// OpenDraft godoc
// @Summary Открыть черновик галереи
// @Description Загружает галерею в черновик. Повторное открытие отбрасывает несохраненные правки.
// @Tags Черновики
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/draft [post]
func (r *Routers) OpenDraft(c echo.Context) error {
	const op = "http.routers.OpenDraft"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	snap, err := r.EditorService.OpenDraft(c.Request().Context(), galleryID)
	if err != nil {
		if errors.Is(err, editor.ErrGalleryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}
		log.Error("failed to open draft", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to open draft"})
	}

	return c.JSON(http.StatusOK, r.draftResponse(c, snap))
}

// UpdateDraft godoc
// @Summary Изменить поля черновика
// @Description Применяет частичную правку: отсутствующие в теле поля не трогаются. Правка локальная, на сервер уходит при Save.
// @Tags Черновики
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body request.UpdateDraftRequest true "Изменяемые поля"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Черновик не открыт"
// @Router /api/v1/galleries/{id}/draft [patch]
func (r *Routers) UpdateDraft(c echo.Context) error {
	const op = "http.routers.UpdateDraft"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req request.UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	snap, err := r.EditorService.UpdateDraft(c.Request().Context(), galleryID, editor.FieldChanges{
		Title:       req.Title,
		Description: req.Description,
		DateText:    req.Date,
		Status:      req.Status,
		Passphrase:  req.Passphrase,
	})
	if err != nil {
		if errors.Is(err, editor.ErrDraftNotOpen) {
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		}
		log.Error("failed to update draft", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to update draft"})
	}

	return c.JSON(http.StatusOK, r.draftResponse(c, snap))
}

// SaveDraft godoc
// @Summary Сохранить черновик
// @Description Валидирует черновик и сохраняет патч полей и порядок фотографий независимо. Частичная неудача фиксирует успешную часть.
// @Tags Черновики
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Success 200 {object} dto.SaveResponse
// @Failure 400 {object} response.ErrorResponse "Черновик не прошел валидацию или нечего сохранять"
// @Failure 409 {object} response.ErrorResponse "Сохранение уже идет"
// @Failure 502 {object} response.ErrorResponse "Сохранение не удалось, правки не потеряны"
// @Router /api/v1/galleries/{id}/draft/save [post]
func (r *Routers) SaveDraft(c echo.Context) error {
	const op = "http.routers.SaveDraft"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	result, err := r.EditorService.Save(c.Request().Context(), galleryID)
	if err != nil {
		var verr *draft.ValidationError
		switch {
		case errors.Is(err, editor.ErrDraftNotOpen):
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		case errors.Is(err, draft.ErrSaveInFlight):
			return c.JSON(http.StatusConflict, response.ErrSaveConflict)
		case errors.Is(err, draft.ErrNotDirty):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("nothing_to_save", "Draft has no unsaved changes"))
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", verr.Error()))
		}

		// правки не потеряны: успешная часть зафиксирована, остальное
		// осталось dirty для повторного Save
		log.Error("failed to save draft", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails("save_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, dto.SaveResponse(result))
}

// DiscardDraft godoc
// @Summary Отбросить правки черновика
// @Description Перечитывает галерею с сервера, несохраненные правки теряются
// @Tags Черновики
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/draft/discard [post]
func (r *Routers) DiscardDraft(c echo.Context) error {
	const op = "http.routers.DiscardDraft"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	snap, err := r.EditorService.Discard(c.Request().Context(), galleryID)
	if err != nil {
		if errors.Is(err, editor.ErrDraftNotOpen) {
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		}
		log.Error("failed to discard draft", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to discard draft"})
	}

	return c.JSON(http.StatusOK, r.draftResponse(c, snap))
}

// ReorderPhoto godoc
// @Summary Переставить фотографию
// @Description Переставляет фотографию на новый индекс внутри черновика. Позиции остаются непрерывными.
// @Tags Черновики
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body request.ReorderPhotoRequest true "Фотография и новый индекс"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/draft/reorder [post]
func (r *Routers) ReorderPhoto(c echo.Context) error {
	const op = "http.routers.ReorderPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req request.ReorderPhotoRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	}

	photoID, _ := uuid.Parse(req.PhotoID)

	snap, err := r.EditorService.ReorderPhoto(c.Request().Context(), galleryID, photoID, req.ToIndex)
	if err != nil {
		if errors.Is(err, editor.ErrDraftNotOpen) {
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		}
		log.Error("failed to reorder photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to reorder photo"})
	}

	return c.JSON(http.StatusOK, r.draftResponse(c, snap))
}

// UploadPhotos godoc
// @Summary Загрузить фотографии
// @Description Загружает до 5 файлов (jpg, jpeg, png, gif, webp, до 5MB каждый) в конец коллекции черновика
// @Tags Черновики
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param files formData file true "Файлы изображений"
// @Success 201 {object} dto.DraftResponse
// @Failure 400 {object} response.ErrorResponse "Слишком много файлов, файл велик или не изображение"
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/draft/photos [post]
func (r *Routers) UploadPhotos(c echo.Context) error {
	const op = "http.routers.UploadPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("no multipart form in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "files are required"})
	}

	files := form.File["files"]

	snap, err := r.EditorService.UploadPhotos(c.Request().Context(), galleryID, files)
	if err != nil {
		if errors.Is(err, editor.ErrDraftNotOpen) {
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		}
		log.Warn("upload rejected", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	}

	log.Info("photos uploaded", slog.Int("count", len(files)))

	return c.JSON(http.StatusCreated, r.draftResponse(c, snap))
}

// DeletePhoto godoc
// @Summary Удалить фотографию
// @Description Удаляет фотографию немедленно; дыра в позициях закрывается в черновике
// @Tags Черновики
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param photo_id path string true "UUID фотографии" format(uuid)
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/draft/photos/{photo_id} [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		log.Error("invalid photo ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid photo ID format"})
	}

	snap, err := r.EditorService.DeletePhoto(c.Request().Context(), galleryID, photoID)
	if err != nil {
		switch {
		case errors.Is(err, editor.ErrDraftNotOpen):
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		case errors.Is(err, editor.ErrPhotoNotFound):
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}
		log.Error("failed to delete photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to delete photo"})
	}

	return c.JSON(http.StatusOK, r.draftResponse(c, snap))
}

// MovePhoto godoc
// @Summary Перенести фотографию в другую галерею
// @Tags Черновики
// @Accept json
// @Param id path string true "UUID исходной галереи" format(uuid)
// @Param photo_id path string true "UUID фотографии" format(uuid)
// @Param request body request.MovePhotoRequest true "Галерея назначения"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/draft/photos/{photo_id}/move [post]
func (r *Routers) MovePhoto(c echo.Context) error {
	const op = "http.routers.MovePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		log.Error("invalid photo ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid photo ID format"})
	}

	var req request.MovePhotoRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	}

	toGalleryID, _ := uuid.Parse(req.ToGalleryID)

	if err := r.EditorService.MovePhoto(c.Request().Context(), galleryID, photoID, toGalleryID); err != nil {
		switch {
		case errors.Is(err, editor.ErrDraftNotOpen):
			return c.JSON(http.StatusConflict, response.ErrDraftNotOpen)
		case errors.Is(err, editor.ErrGalleryNotFound):
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		case errors.Is(err, editor.ErrPhotoNotFound):
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}
		log.Error("failed to move photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to move photo"})
	}

	return c.NoContent(http.StatusNoContent)
}

// SuggestPassphrase godoc
// @Summary Подсказка кодовой фразы
// @Tags Черновики
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Router /api/v1/passphrase/suggest [get]
func (r *Routers) SuggestPassphrase(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"passphrase": r.EditorService.SuggestPassphrase(),
	}))
}

// ArchiveGallery godoc
// @Summary Архивировать галерею
// @Description Мягкое удаление: галерея исчезает из списка, но остается восстановимой
// @Tags Галереи
// @Param id path string true "UUID галереи" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/archive [patch]
func (r *Routers) ArchiveGallery(c echo.Context) error {
	return r.galleryAction(c, "http.routers.ArchiveGallery", r.EditorService.ArchiveGallery)
}

// RestoreGallery godoc
// @Summary Восстановить галерею из архива
// @Tags Галереи
// @Param id path string true "UUID галереи" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/restore [patch]
func (r *Routers) RestoreGallery(c echo.Context) error {
	return r.galleryAction(c, "http.routers.RestoreGallery", r.EditorService.RestoreGallery)
}

// DeleteGallery godoc
// @Summary Удалить галерею
// @Description Физическое удаление вместе со всеми фотографиями
// @Tags Галереи
// @Param id path string true "UUID галереи" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id} [delete]
func (r *Routers) DeleteGallery(c echo.Context) error {
	return r.galleryAction(c, "http.routers.DeleteGallery", r.EditorService.DeleteGallery)
}

func (r *Routers) galleryAction(c echo.Context, op string, action func(context.Context, uuid.UUID) error) error {
	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery ID format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	if err := action(c.Request().Context(), galleryID); err != nil {
		if errors.Is(err, editor.ErrGalleryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}
		log.Error("gallery action failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "gallery action failed"})
	}

	return c.NoContent(http.StatusNoContent)
}

// GetSettings godoc
// @Summary Настройки приложения
// @Tags Настройки
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/settings [get]
func (r *Routers) GetSettings(c echo.Context) error {
	const op = "http.routers.GetSettings"

	settings, err := r.SettingsService.GetAppSettings(c.Request().Context())
	if err != nil {
		r.log.Error("failed to get settings", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to get settings"})
	}

	return c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

// UpdateSettings godoc
// @Summary Изменить настройки приложения
// @Tags Настройки
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Новые настройки"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/settings [put]
func (r *Routers) UpdateSettings(c echo.Context) error {
	const op = "http.routers.UpdateSettings"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	}

	updated, err := r.SettingsService.UpdateAppSettings(c.Request().Context(), models.AppSettings{
		ApplicationName:   req.ApplicationName,
		LightboxMode:      models.LightboxMode(req.LightboxMode),
		DefaultSortOrder:  models.SortOrder(req.DefaultSortOrder),
		DefaultDateFormat: dateformat.Format(req.DefaultDateFormat),
	})
	if err != nil {
		log.Error("failed to update settings", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.NewSettingsResponse(updated))
}

// dateFormat берет формат отображения дат из настроек; при недоступности
// настроек ответы не падают, а используют формат по умолчанию.
func (r *Routers) dateFormat(c echo.Context) dateformat.Format {
	settings, err := r.SettingsService.GetAppSettings(c.Request().Context())
	if err != nil {
		return dateformat.DefaultFormat
	}
	return settings.DefaultDateFormat
}

func (r *Routers) draftResponse(c echo.Context, snap editor.DraftSnapshot) dto.DraftResponse {
	photos := make([]dto.PhotoResponse, len(snap.Photos))
	for i, p := range snap.Photos {
		photos[i] = dto.NewPhotoResponse(p)
	}

	return dto.DraftResponse{
		ID:          snap.ID,
		Title:       snap.Title,
		Description: snap.Description,
		Date:        snap.Date,
		DateDisplay: dateformat.FormatInstant(snap.Date, r.dateFormat(c)),
		Status:      snap.Status,
		Passphrase:  snap.Passphrase,
		State:       snap.State,
		Photos:      photos,
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return c.QueryParam("token")
}
