package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// NewGalleryToken выдает токен доступа к закрытой галерее
func NewGalleryToken(galleryID uuid.UUID, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["gid"] = galleryID.String()
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(duration).Unix()

	return token.SignedString([]byte(secret))
}

// ParseGalleryToken проверяет подпись и возвращает id галереи из claims
func ParseGalleryToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidClaims
	}

	gid, ok := claims["gid"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidClaims
	}

	galleryID, err := uuid.Parse(gid)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}

	return galleryID, nil
}
