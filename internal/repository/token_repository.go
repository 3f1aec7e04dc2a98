package repository

import (
	redisapp "photo_stories/internal/storage/redis"

	"github.com/redis/go-redis/v9"

	"context"
	"time"
)

// RedisTokenRepo хранит токены доступа к закрытым галереям. Ключ один
// на галерею, поэтому SET затирает предыдущий токен: повторная проверка
// парольной фразы просто перевыпускает токен.
type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveGalleryToken(ctx context.Context, galleryID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, galleryTokenKey(galleryID), token, exp).Err()
}

func (r *RedisTokenRepo) GetGalleryToken(ctx context.Context, galleryID string) (string, error) {
	val, err := r.Client.Get(ctx, galleryTokenKey(galleryID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (r *RedisTokenRepo) DeleteGalleryToken(ctx context.Context, galleryID string) error {
	return r.Client.Del(ctx, galleryTokenKey(galleryID)).Err()
}

func galleryTokenKey(galleryID string) string {
	return "gallery:" + galleryID + ":token"
}
