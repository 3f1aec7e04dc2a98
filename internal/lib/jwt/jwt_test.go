package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryToken_RoundTrip(t *testing.T) {
	galleryID := uuid.New()

	token, err := NewGalleryToken(galleryID, "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseGalleryToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, galleryID, parsed)
}

func TestGalleryToken_WrongSecret(t *testing.T) {
	token, err := NewGalleryToken(uuid.New(), "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseGalleryToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGalleryToken_Expired(t *testing.T) {
	token, err := NewGalleryToken(uuid.New(), "secret", -time.Hour)
	require.NoError(t, err)

	_, err = ParseGalleryToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGalleryToken_Garbage(t *testing.T) {
	_, err := ParseGalleryToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
