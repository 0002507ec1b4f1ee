package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bookingbot/server/internal/assistant/model"
	errx "github.com/bookingbot/server/internal/core/error"
	logx "github.com/bookingbot/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func (r *RedisSessionRepository) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	key := r.sessionKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal session")
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *model.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", session.ID).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}
	key := r.sessionKey(session.ID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) Clear(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
