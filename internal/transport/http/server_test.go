package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"photo_stories/internal/domain/draft"
	"photo_stories/internal/domain/models"
	editor "photo_stories/internal/services/editor_service"
	"photo_stories/internal/storage"
	httpapp "photo_stories/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEditorService struct {
	mock.Mock
}

func (m *MockEditorService) CreateGallery(ctx context.Context) (editor.DraftSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) OpenDraft(ctx context.Context, galleryID uuid.UUID) (editor.DraftSnapshot, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) UpdateDraft(ctx context.Context, galleryID uuid.UUID, changes editor.FieldChanges) (editor.DraftSnapshot, error) {
	args := m.Called(ctx, galleryID, changes)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) ReorderPhoto(ctx context.Context, galleryID, photoID uuid.UUID, toIndex int) (editor.DraftSnapshot, error) {
	args := m.Called(ctx, galleryID, photoID, toIndex)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) Save(ctx context.Context, galleryID uuid.UUID) (editor.SaveResult, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).(editor.SaveResult), args.Error(1)
}

func (m *MockEditorService) Discard(ctx context.Context, galleryID uuid.UUID) (editor.DraftSnapshot, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) UploadPhotos(ctx context.Context, galleryID uuid.UUID, files []*multipart.FileHeader) (editor.DraftSnapshot, error) {
	args := m.Called(ctx, galleryID, files)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) DeletePhoto(ctx context.Context, galleryID, photoID uuid.UUID) (editor.DraftSnapshot, error) {
	args := m.Called(ctx, galleryID, photoID)
	return args.Get(0).(editor.DraftSnapshot), args.Error(1)
}

func (m *MockEditorService) MovePhoto(ctx context.Context, fromGalleryID, photoID, toGalleryID uuid.UUID) error {
	args := m.Called(ctx, fromGalleryID, photoID, toGalleryID)
	return args.Error(0)
}

func (m *MockEditorService) SuggestPassphrase() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEditorService) GetGallery(ctx context.Context, galleryID uuid.UUID) (models.Gallery, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockEditorService) ListGalleries(ctx context.Context, after string, pageSize int) (models.GalleryPage, error) {
	args := m.Called(ctx, after, pageSize)
	return args.Get(0).(models.GalleryPage), args.Error(1)
}

func (m *MockEditorService) ArchiveGallery(ctx context.Context, galleryID uuid.UUID) error {
	args := m.Called(ctx, galleryID)
	return args.Error(0)
}

func (m *MockEditorService) RestoreGallery(ctx context.Context, galleryID uuid.UUID) error {
	args := m.Called(ctx, galleryID)
	return args.Error(0)
}

func (m *MockEditorService) DeleteGallery(ctx context.Context, galleryID uuid.UUID) error {
	args := m.Called(ctx, galleryID)
	return args.Error(0)
}

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) IsGated(status string) bool {
	args := m.Called(status)
	return args.Bool(0)
}

func (m *MockAccessService) Verify(ctx context.Context, galleryID uuid.UUID, passphrase string) (models.AccessGrant, error) {
	args := m.Called(ctx, galleryID, passphrase)
	return args.Get(0).(models.AccessGrant), args.Error(1)
}

func (m *MockAccessService) Check(ctx context.Context, galleryID uuid.UUID, token string) error {
	args := m.Called(ctx, galleryID, token)
	return args.Error(0)
}

func (m *MockAccessService) Revoke(ctx context.Context, galleryID uuid.UUID) error {
	args := m.Called(ctx, galleryID)
	return args.Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetAppSettings(ctx context.Context) (models.AppSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AppSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateAppSettings(ctx context.Context, settings models.AppSettings) (models.AppSettings, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(models.AppSettings), args.Error(1)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type testEnv struct {
	e        *echo.Echo
	editor   *MockEditorService
	access   *MockAccessService
	settings *MockSettingsService
}

func newTestEnv() *testEnv {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	editorMock := new(MockEditorService)
	accessMock := new(MockAccessService)
	settingsMock := new(MockSettingsService)
	settingsMock.On("GetAppSettings", mock.Anything).Return(models.DefaultAppSettings(), nil).Maybe()

	routers := httpapp.NewRouter(log, editorMock, accessMock, settingsMock)

	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-session-secret"))))

	api := e.Group("/api/v1")
	api.GET("/settings", routers.GetSettings)
	api.PUT("/settings", routers.UpdateSettings)

	galleries := api.Group("/galleries")
	galleries.GET("", routers.ListGalleries)
	galleries.POST("", routers.CreateGallery)
	galleries.GET("/:id", routers.GetGallery)
	galleries.POST("/:id/verify", routers.VerifyAccess)
	galleries.DELETE("/:id/verify", routers.RevokeAccess)

	drafts := galleries.Group("/:id/draft")
	drafts.POST("", routers.OpenDraft)
	drafts.PATCH("", routers.UpdateDraft)
	drafts.POST("/save", routers.SaveDraft)
	drafts.POST("/photos", routers.UploadPhotos)

	return &testEnv{
		e:        e,
		editor:   editorMock,
		access:   accessMock,
		settings: settingsMock,
	}
}

func (env *testEnv) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func testGallery(status string) models.Gallery {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	return models.Gallery{
		ID:     uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Title:  "Summer Wedding",
		Date:   &date,
		Status: status,
	}
}

func TestGetGallery_Open(t *testing.T) {
	env := newTestEnv()
	g := testGallery("draft")

	env.editor.On("GetGallery", mock.Anything, g.ID).Return(g, nil)
	env.access.On("IsGated", "draft").Return(false)

	rec := env.do(http.MethodGet, "/api/v1/galleries/"+g.ID.String(), nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "Summer Wedding", payload["title"])
	env.access.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetGallery_GatedWithoutToken(t *testing.T) {
	env := newTestEnv()
	g := testGallery("gated")

	env.editor.On("GetGallery", mock.Anything, g.ID).Return(g, nil)
	env.access.On("IsGated", "gated").Return(true)
	env.access.On("Check", mock.Anything, g.ID, "").Return(fmt.Errorf("check: unauthorized"))

	rec := env.do(http.MethodGet, "/api/v1/galleries/"+g.ID.String(), nil, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "unauthorized", payload["error"])
}

func TestGetGallery_GatedWithBearerToken(t *testing.T) {
	env := newTestEnv()
	g := testGallery("gated")

	env.editor.On("GetGallery", mock.Anything, g.ID).Return(g, nil)
	env.access.On("IsGated", "gated").Return(true)
	env.access.On("Check", mock.Anything, g.ID, "valid-token").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/galleries/"+g.ID.String(), nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env.access.AssertCalled(t, "Check", mock.Anything, g.ID, "valid-token")
}

func TestGetGallery_NotFound(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("GetGallery", mock.Anything, galleryID).
		Return(models.Gallery{}, fmt.Errorf("get gallery: %w", editor.ErrGalleryNotFound))

	rec := env.do(http.MethodGet, "/api/v1/galleries/"+galleryID.String(), nil, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetGallery_InvalidID(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/v1/galleries/not-a-uuid", nil, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyAccess_CorrectPassphrase(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.access.On("Verify", mock.Anything, galleryID, "orange-crystal-42").
		Return(models.AccessGrant{OK: true, Token: "jwt-token", Gallery: &models.Gallery{ID: galleryID}}, nil)

	body := strings.NewReader(`{"passphrase":"orange-crystal-42"}`)
	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/verify", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, true, data["ok"])
	assert.Equal(t, "jwt-token", data["token"])
}

func TestVerifyAccess_WrongPassphrase(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.access.On("Verify", mock.Anything, galleryID, "wrong-guess").
		Return(models.AccessGrant{OK: false, Message: "Incorrect passphrase"}, nil)

	body := strings.NewReader(`{"passphrase":"wrong-guess"}`)
	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/verify", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, false, data["ok"])
	assert.Equal(t, "Incorrect passphrase", data["message"])
	assert.NotContains(t, data, "token")
}

func TestVerifyAccess_ShortWrongGuess(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	// короткая неверная фраза - это обычное несовпадение, а не ошибка формата
	env.access.On("Verify", mock.Anything, galleryID, "ab").
		Return(models.AccessGrant{OK: false, Message: "Incorrect passphrase"}, nil)

	body := strings.NewReader(`{"passphrase":"ab"}`)
	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/verify", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, false, data["ok"])
}

func TestCreateGallery(t *testing.T) {
	env := newTestEnv()

	snap := editor.DraftSnapshot{
		ID:     uuid.New(),
		Title:  models.DefaultTitle,
		Status: "draft",
		State:  "clean",
	}
	env.editor.On("CreateGallery", mock.Anything).Return(snap, nil)

	rec := env.do(http.MethodPost, "/api/v1/galleries", nil, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, models.DefaultTitle, payload["title"])
	assert.Equal(t, "clean", payload["state"])
}

func TestListGalleries_DefaultPageSize(t *testing.T) {
	env := newTestEnv()

	page := models.GalleryPage{
		Items: []models.GallerySummary{
			{ID: uuid.New(), Title: "First"},
			{ID: uuid.New(), Title: "Second"},
		},
		EndCursor:   "cursor-2",
		HasNextPage: true,
	}
	env.editor.On("ListGalleries", mock.Anything, "", 20).Return(page, nil)

	rec := env.do(http.MethodGet, "/api/v1/galleries", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Len(t, payload["items"], 2)
	assert.Equal(t, true, payload["has_next_page"])
}

func TestUpdateDraft_NotOpen(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("UpdateDraft", mock.Anything, galleryID, mock.Anything).
		Return(editor.DraftSnapshot{}, fmt.Errorf("update draft: %w", editor.ErrDraftNotOpen))

	body := strings.NewReader(`{"title":"New Title"}`)
	rec := env.do(http.MethodPatch, "/api/v1/galleries/"+galleryID.String()+"/draft", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusConflict, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "draft_not_open", payload["error"])
}

func TestUpdateDraft_PartialChanges(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	title := "Renamed"
	env.editor.On("UpdateDraft", mock.Anything, galleryID, editor.FieldChanges{Title: &title}).
		Return(editor.DraftSnapshot{ID: galleryID, Title: "Renamed", State: "dirty"}, nil)

	body := strings.NewReader(`{"title":"Renamed"}`)
	rec := env.do(http.MethodPatch, "/api/v1/galleries/"+galleryID.String()+"/draft", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "dirty", payload["state"])
}

func TestSaveDraft_Success(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("Save", mock.Anything, galleryID).
		Return(editor.SaveResult{PatchSaved: true, OrderSaved: true, State: "clean"}, nil)

	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/save", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, true, payload["patch_saved"])
	assert.Equal(t, true, payload["order_saved"])
	assert.Equal(t, "clean", payload["state"])
}

func TestSaveDraft_SaveInFlight(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("Save", mock.Anything, galleryID).
		Return(editor.SaveResult{}, fmt.Errorf("save: %w", draft.ErrSaveInFlight))

	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/save", nil, "")

	require.Equal(t, http.StatusConflict, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "save_in_flight", payload["error"])
}

func TestSaveDraft_NothingToSave(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("Save", mock.Anything, galleryID).
		Return(editor.SaveResult{}, fmt.Errorf("save: %w", draft.ErrNotDirty))

	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/save", nil, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "nothing_to_save", payload["error"])
}

func TestSaveDraft_ValidationFailed(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	verr := &draft.ValidationError{Field: draft.FieldTitle, Message: "title must not be empty"}
	env.editor.On("Save", mock.Anything, galleryID).
		Return(editor.SaveResult{}, fmt.Errorf("save: %w", verr))

	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/save", nil, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "validation_failed", payload["error"])
	assert.Contains(t, payload["details"], "title")
}

func TestSaveDraft_BackendFailure(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("Save", mock.Anything, galleryID).
		Return(editor.SaveResult{OrderSaved: true, State: "dirty"}, fmt.Errorf("save gallery details: connection refused"))

	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/save", nil, "")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "save_failed", payload["error"])
}

func multipartBody(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, name := range filenames {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestUploadPhotos(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	snap := editor.DraftSnapshot{
		ID:    galleryID,
		State: "clean",
		Photos: []models.Photo{
			{ID: uuid.New(), Position: 0},
		},
	}
	env.editor.On("UploadPhotos", mock.Anything, galleryID, mock.Anything).Return(snap, nil)

	body, contentType := multipartBody(t, "wedding.jpg")
	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/photos", body, contentType)

	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Len(t, payload["photos"], 1)
}

func TestUploadPhotos_Rejected(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	env.editor.On("UploadPhotos", mock.Anything, galleryID, mock.Anything).
		Return(editor.DraftSnapshot{}, fmt.Errorf("upload: %w", storage.ErrTooManyFiles))

	body, contentType := multipartBody(t, "1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg")
	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/photos", body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadPhotos_NoFiles(t *testing.T) {
	env := newTestEnv()
	galleryID := uuid.New()

	rec := env.do(http.MethodPost, "/api/v1/galleries/"+galleryID.String()+"/draft/photos", strings.NewReader("{}"), echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env.editor.AssertNotCalled(t, "UploadPhotos", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSettings(t *testing.T) {
	env := newTestEnv()

	env.settings.On("UpdateAppSettings", mock.Anything, mock.Anything).
		Return(models.AppSettings{
			ApplicationName:  "My Portfolio",
			LightboxMode:     models.LightboxBlurred,
			DefaultSortOrder: models.SortOldestFirst,
		}, nil)

	body := strings.NewReader(`{"application_name":"My Portfolio","lightbox_mode":"BLURRED","default_sort_order":"OLDEST_FIRST","default_date_format":"D_MMM_YYYY"}`)
	rec := env.do(http.MethodPut, "/api/v1/settings", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeJSON(t, rec)
	assert.Equal(t, "My Portfolio", payload["application_name"])
	assert.Equal(t, "BLURRED", payload["lightbox_mode"])
}

func TestUpdateSettings_InvalidLightboxMode(t *testing.T) {
	env := newTestEnv()

	body := strings.NewReader(`{"application_name":"My Portfolio","lightbox_mode":"NEON","default_sort_order":"NEWEST_FIRST","default_date_format":"D_MMM_YYYY"}`)
	rec := env.do(http.MethodPut, "/api/v1/settings", body, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env.settings.AssertNotCalled(t, "UpdateAppSettings", mock.Anything, mock.Anything)
}
