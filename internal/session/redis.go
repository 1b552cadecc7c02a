package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/domain"
)

const (
	cartField = "cart"
	userField = "user_id"
)

type redisStore struct {
	client      *redis.Client
	idleTimeout time.Duration
	logger      *zap.Logger
}

// NewRedisStore creates a redis-backed session store. Each session is one
// hash whose TTL carries the idle expiry; every access slides it forward.
func NewRedisStore(client *redis.Client, idleTimeout time.Duration, logger *zap.Logger) *redisStore {
	return &redisStore{
		client:      client,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *redisStore) LoadCart(ctx context.Context, token string) (domain.Cart, error) {
	key := sessionKey(token)

	raw, err := s.client.HGet(ctx, key, cartField).Result()
	if err == redis.Nil {
		// No cart yet, or the session expired. Both load as empty.
		return domain.Cart{State: domain.CartStateEmpty}, nil
	}
	if err != nil {
		s.logger.Error("Failed to load cart from redis", zap.Error(err))
		return domain.Cart{}, err
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.logger.Error("Failed to decode stored cart", zap.Error(err))
		return domain.Cart{State: domain.CartStateEmpty}, nil
	}

	s.touch(ctx, key)
	return cart, nil
}

func (s *redisStore) SaveCart(ctx context.Context, token string, cart domain.Cart) error {
	key := sessionKey(token)

	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	if err := s.client.HSet(ctx, key, cartField, raw).Err(); err != nil {
		s.logger.Error("Failed to save cart to redis", zap.Error(err))
		return err
	}

	s.touch(ctx, key)
	return nil
}

func (s *redisStore) SetUserID(ctx context.Context, token string, userID uuid.UUID) error {
	key := sessionKey(token)

	if err := s.client.HSet(ctx, key, userField, userID.String()).Err(); err != nil {
		s.logger.Error("Failed to bind user to session", zap.Error(err))
		return err
	}

	s.touch(ctx, key)
	return nil
}

func (s *redisStore) UserID(ctx context.Context, token string) (uuid.UUID, bool, error) {
	raw, err := s.client.HGet(ctx, sessionKey(token), userField).Result()
	if err == redis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read session user", zap.Error(err))
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, nil
	}

	s.touch(ctx, sessionKey(token))
	return userID, true, nil
}

func (s *redisStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		s.logger.Error("Failed to clear session", zap.Error(err))
		return err
	}
	return nil
}

func (s *redisStore) touch(ctx context.Context, key string) {
	if err := s.client.Expire(ctx, key, s.idleTimeout).Err(); err != nil {
		s.logger.Warn("Failed to refresh session expiry", zap.Error(err))
	}
}
