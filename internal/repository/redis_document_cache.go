package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const documentCacheKeyPrefix = "interface_doc:"

// Compile-time check
var _ DocumentCache = (*redisDocumentCache)(nil)

type redisDocumentCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisDocumentCache creates a Redis-backed read cache for encoded
// configuration documents.
func NewRedisDocumentCache(client *redis.Client, logger *zap.Logger) DocumentCache {
	return &redisDocumentCache{
		client: client,
		logger: logger.Named("RedisDocCache"),
	}
}

func documentCacheKey(workspaceID, interfaceID uuid.UUID) string {
	return documentCacheKeyPrefix + workspaceID.String() + ":" + interfaceID.String()
}

func (c *redisDocumentCache) Get(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID) (json.RawMessage, error) {
	key := documentCacheKey(workspaceID, interfaceID)
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		c.logger.Error("Failed to get document from redis", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to get document from redis: %w", err)
	}
	return json.RawMessage(val), nil
}

func (c *redisDocumentCache) Set(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID, raw json.RawMessage, ttl time.Duration) error {
	key := documentCacheKey(workspaceID, interfaceID)
	if err := c.client.Set(ctx, key, []byte(raw), ttl).Err(); err != nil {
		c.logger.Error("Failed to set document in redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set document in redis: %w", err)
	}
	c.logger.Debug("Document cached", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (c *redisDocumentCache) Invalidate(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID) error {
	key := documentCacheKey(workspaceID, interfaceID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to invalidate cached document", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to invalidate cached document: %w", err)
	}
	return nil
}
