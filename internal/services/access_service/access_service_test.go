package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"photo_stories/internal/domain/models"
	applicationjwt "photo_stories/internal/lib/jwt"
	"photo_stories/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockGalleryProvider struct {
	mock.Mock
}

func (m *MockGalleryProvider) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Gallery), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveGalleryToken(ctx context.Context, galleryID, token string, exp time.Duration) error {
	args := m.Called(ctx, galleryID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetGalleryToken(ctx context.Context, galleryID string) (string, error) {
	args := m.Called(ctx, galleryID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteGalleryToken(ctx context.Context, galleryID string) error {
	args := m.Called(ctx, galleryID)
	return args.Error(0)
}

var (
	testCtx       = context.Background()
	testGalleryID = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	testSecret    = "test-secret"
)

func newTestService(galleries *MockGalleryProvider, tokens *MockTokenRepository) *AccessService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAccessService(log, galleries, tokens, testSecret, time.Hour, []string{"gated", "archived"})
}

func gatedGallery(t *testing.T, passphrase string) models.Gallery {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.MinCost)
	require.NoError(t, err)

	return models.Gallery{
		ID:             testGalleryID,
		Title:          "Gated",
		Status:         "gated",
		PassphraseHash: hash,
	}
}

func TestVerify_CorrectPassphrase(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	galleries.On("GetGalleryByID", testCtx, testGalleryID).
		Return(gatedGallery(t, "peach-glow-42"), nil)
	tokens.On("SaveGalleryToken", testCtx, testGalleryID.String(), mock.Anything, time.Hour).
		Return(nil)

	grant, err := service.Verify(testCtx, testGalleryID, "peach-glow-42")

	require.NoError(t, err)
	assert.True(t, grant.OK)
	assert.NotEmpty(t, grant.Token)
	require.NotNil(t, grant.Gallery)
	assert.Equal(t, "Gated", grant.Gallery.Title)

	parsed, err := applicationjwt.ParseGalleryToken(grant.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, testGalleryID, parsed)

	tokens.AssertExpectations(t)
}

func TestVerify_WrongPassphrase(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	galleries.On("GetGalleryByID", testCtx, testGalleryID).
		Return(gatedGallery(t, "peach-glow-42"), nil)

	grant, err := service.Verify(testCtx, testGalleryID, "wrong-guess-11")

	require.NoError(t, err)
	assert.False(t, grant.OK)
	assert.Empty(t, grant.Token)
	assert.Equal(t, "Incorrect passphrase", grant.Message)
	tokens.AssertNotCalled(t, "SaveGalleryToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_OpenGallery(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	galleries.On("GetGalleryByID", testCtx, testGalleryID).
		Return(models.Gallery{ID: testGalleryID, Status: "published"}, nil)

	grant, err := service.Verify(testCtx, testGalleryID, "")

	require.NoError(t, err)
	assert.True(t, grant.OK)
	assert.Empty(t, grant.Token)
}

func TestVerify_GalleryNotFound(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	galleries.On("GetGalleryByID", testCtx, testGalleryID).
		Return(models.Gallery{}, storage.ErrGalleryNotFound)

	_, err := service.Verify(testCtx, testGalleryID, "anything")

	assert.ErrorIs(t, err, ErrGalleryNotFound)
}

func TestVerify_OverwritesPreviousToken(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	gallery := gatedGallery(t, "calm-river-77")
	galleries.On("GetGalleryByID", testCtx, testGalleryID).Return(gallery, nil)

	var saved []string
	tokens.On("SaveGalleryToken", testCtx, testGalleryID.String(), mock.Anything, time.Hour).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.String(2))
		}).
		Return(nil)

	first, err := service.Verify(testCtx, testGalleryID, "calm-river-77")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond) // iat с секундной точностью
	second, err := service.Verify(testCtx, testGalleryID, "calm-river-77")
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.Equal(t, first.Token, saved[0])
	assert.Equal(t, second.Token, saved[1])
	assert.NotEqual(t, first.Token, second.Token)
}

func TestCheck_ValidToken(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	token, err := applicationjwt.NewGalleryToken(testGalleryID, testSecret, time.Hour)
	require.NoError(t, err)

	tokens.On("GetGalleryToken", testCtx, testGalleryID.String()).Return(token, nil)

	assert.NoError(t, service.Check(testCtx, testGalleryID, token))
}

func TestCheck_EmptyToken(t *testing.T) {
	service := newTestService(new(MockGalleryProvider), new(MockTokenRepository))

	err := service.Check(testCtx, testGalleryID, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheck_TokenForOtherGallery(t *testing.T) {
	service := newTestService(new(MockGalleryProvider), new(MockTokenRepository))

	token, err := applicationjwt.NewGalleryToken(uuid.New(), testSecret, time.Hour)
	require.NoError(t, err)

	err = service.Check(testCtx, testGalleryID, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheck_SupersededToken(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	token, err := applicationjwt.NewGalleryToken(testGalleryID, testSecret, time.Hour)
	require.NoError(t, err)

	tokens.On("GetGalleryToken", testCtx, testGalleryID.String()).Return("newer-token", nil)

	err = service.Check(testCtx, testGalleryID, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheck_StorageError(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	token, err := applicationjwt.NewGalleryToken(testGalleryID, testSecret, time.Hour)
	require.NoError(t, err)

	expectedErr := errors.New("redis down")
	tokens.On("GetGalleryToken", testCtx, testGalleryID.String()).Return("", expectedErr)

	err = service.Check(testCtx, testGalleryID, token)
	assert.ErrorIs(t, err, expectedErr)
}

func TestRevoke(t *testing.T) {
	galleries := new(MockGalleryProvider)
	tokens := new(MockTokenRepository)
	service := newTestService(galleries, tokens)

	tokens.On("DeleteGalleryToken", testCtx, testGalleryID.String()).Return(nil)

	assert.NoError(t, service.Revoke(testCtx, testGalleryID))
	tokens.AssertExpectations(t)
}
