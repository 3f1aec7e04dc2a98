package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photo_stories/internal/domain/models"
	applicationjwt "photo_stories/internal/lib/jwt"
	"photo_stories/internal/lib/logger/sl"
	"photo_stories/internal/repository"
	"photo_stories/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrGalleryNotFound = errors.New("gallery not found")
	ErrNotGated        = errors.New("gallery is not passphrase protected")
	ErrUnauthorized    = errors.New("unauthorized")
)

const incorrectPassphraseMessage = "Incorrect passphrase"

type GalleryProvider interface {
	GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
}

// AccessService проверяет кодовые фразы и выдает токены доступа к закрытым галереям
type AccessService struct {
	log       *slog.Logger
	galleries GalleryProvider
	tokens    repository.TokenRepository
	secret    string
	tokenTTL  time.Duration
	gated     map[string]struct{}
}

func NewAccessService(
	log *slog.Logger,
	galleries GalleryProvider,
	tokens repository.TokenRepository,
	secret string,
	tokenTTL time.Duration,
	gatedStatuses []string,
) *AccessService {
	gated := make(map[string]struct{}, len(gatedStatuses))
	for _, status := range gatedStatuses {
		gated[status] = struct{}{}
	}

	return &AccessService{
		log:       log,
		galleries: galleries,
		tokens:    tokens,
		secret:    secret,
		tokenTTL:  tokenTTL,
		gated:     gated,
	}
}

// IsGated сообщает, требует ли статус кодовую фразу
func (s *AccessService) IsGated(status string) bool {
	_, ok := s.gated[status]
	return ok
}

// Verify сверяет кодовую фразу и при совпадении выдает токен доступа.
// Несовпадение фразы не считается ошибкой: возвращается грант с ok=false.
func (s *AccessService) Verify(ctx context.Context, galleryID uuid.UUID, passphrase string) (models.AccessGrant, error) {
	const op = "access.Verify"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	log.Info("verifying gallery passphrase")

	gallery, err := s.galleries.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			log.Warn("gallery not found", sl.Err(err))

			return models.AccessGrant{}, fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		log.Error("failed to get gallery", sl.Err(err))

		return models.AccessGrant{}, fmt.Errorf("%s: %w", op, err)
	}

	if !s.IsGated(gallery.Status) || len(gallery.PassphraseHash) == 0 {
		log.Info("gallery is open, no passphrase required")

		return models.AccessGrant{OK: true, Gallery: &gallery}, nil
	}

	if err := bcrypt.CompareHashAndPassword(gallery.PassphraseHash, []byte(passphrase)); err != nil {
		log.Info("passphrase mismatch")

		return models.AccessGrant{OK: false, Message: incorrectPassphraseMessage}, nil
	}

	token, err := applicationjwt.NewGalleryToken(galleryID, s.secret, s.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.AccessGrant{}, fmt.Errorf("%s: %w", op, err)
	}

	// одна галерея - один действующий токен, повторная проверка перезаписывает его
	if err := s.tokens.SaveGalleryToken(ctx, galleryID.String(), token, s.tokenTTL); err != nil {
		log.Error("failed to save token", sl.Err(err))

		return models.AccessGrant{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("passphrase verified, token issued")

	return models.AccessGrant{OK: true, Token: token, Gallery: &gallery}, nil
}

// Check валидирует токен доступа к галерее
func (s *AccessService) Check(ctx context.Context, galleryID uuid.UUID, token string) error {
	const op = "access.Check"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	if token == "" {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	claimedID, err := applicationjwt.ParseGalleryToken(token, s.secret)
	if err != nil || claimedID != galleryID {
		log.Info("token rejected")

		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	stored, err := s.tokens.GetGalleryToken(ctx, galleryID.String())
	if err != nil {
		log.Error("failed to get stored token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}
	if stored != token {
		log.Info("token superseded or revoked")

		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	return nil
}

// Revoke отзывает действующий токен галереи
func (s *AccessService) Revoke(ctx context.Context, galleryID uuid.UUID) error {
	const op = "access.Revoke"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	if err := s.tokens.DeleteGalleryToken(ctx, galleryID.String()); err != nil {
		log.Error("failed to delete token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery token revoked")

	return nil
}
