package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"traits-matcher/internal/domain"
)

// RedisTraitCache envuelve un TraitRepository con una caché read-through.
// Los rasgos son inmutables después de crearse, así que una entrada cacheada
// nunca queda obsoleta; el TTL solo acota la memoria usada en redis.
// Cualquier fallo de redis degrada a la base de datos (fail-open).
type RedisTraitCache struct {
	inner  TraitRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	prefix string
}

func NewRedisTraitCache(inner TraitRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTraitCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisTraitCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
		prefix: "trait:",
	}
}

// Create delega en el repositorio y escribe la entrada en caché si tuvo éxito.
func (c *RedisTraitCache) Create(ctx context.Context, trait domain.Trait) error {
	if err := c.inner.Create(ctx, trait); err != nil {
		return err
	}
	c.set(ctx, trait)
	return nil
}

// GetByName consulta redis primero y cae a la base de datos en miss o error.
func (c *RedisTraitCache) GetByName(ctx context.Context, name string) (domain.Trait, error) {
	payload, err := c.client.Get(ctx, c.prefix+name).Bytes()
	if err == nil {
		var t domain.Trait
		if err := json.Unmarshal(payload, &t); err == nil {
			return t, nil
		}
		c.logger.Warn("corrupt trait cache entry", zap.String("trait", name))
	} else if err != redis.Nil {
		c.logger.Warn("trait cache read failed", zap.Error(err), zap.String("trait", name))
	}

	t, err := c.inner.GetByName(ctx, name)
	if err != nil {
		return domain.Trait{}, err
	}
	c.set(ctx, t)
	return t, nil
}

func (c *RedisTraitCache) ListAll(ctx context.Context) ([]domain.Trait, error) {
	return c.inner.ListAll(ctx)
}

func (c *RedisTraitCache) set(ctx context.Context, trait domain.Trait) {
	payload, err := json.Marshal(trait)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+trait.Name, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("trait cache write failed", zap.Error(err), zap.String("trait", trait.Name))
	}
}
