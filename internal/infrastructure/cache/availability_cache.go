// Package cache implementa el cache de disponibilidad sobre Redis.
//
// El cache guarda instantáneas JSON por variante bajo la clave
// availability:<org>:<variant>. Es una capa opcional de lectura: si Redis no
// responde, el motor sigue funcionando contra PostgreSQL y la falla solo se
// registra en el log.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appinventory "github.com/tu-usuario/stock-engine/internal/application/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
	"github.com/tu-usuario/stock-engine/pkg/logger"
)

var _ appinventory.AvailabilityCache = (*RedisAvailabilityCache)(nil)

// RedisAvailabilityCache implementa inventory.AvailabilityCache con go-redis.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisAvailabilityCache construye el cache con TTL para los snapshots.
func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: ttl, log: log}
}

// NewRedisClient crea el cliente y verifica conectividad con un Ping.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func availabilityKey(organizationID, variantID string) string {
	return fmt.Sprintf("availability:%s:%s", organizationID, variantID)
}

// Get devuelve el snapshot cacheado de una variante, o false si no hay.
func (c *RedisAvailabilityCache) Get(ctx context.Context, organizationID, variantID string) (*inventory.Availability, bool) {
	data, err := c.client.Get(ctx, availabilityKey(organizationID, variantID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("variant_id", variantID).Msg("cache: fallo leyendo disponibilidad")
		}
		return nil, false
	}
	var snapshot inventory.Availability
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.log.Warn().Err(err).Str("variant_id", variantID).Msg("cache: snapshot corrupto, descartando")
		return nil, false
	}
	return &snapshot, true
}

// Set guarda el snapshot de disponibilidad con TTL.
func (c *RedisAvailabilityCache) Set(ctx context.Context, organizationID string, snapshot inventory.Availability) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		c.log.Warn().Err(err).Str("variant_id", snapshot.VariantID).Msg("cache: fallo serializando disponibilidad")
		return
	}
	if err := c.client.Set(ctx, availabilityKey(organizationID, snapshot.VariantID), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("variant_id", snapshot.VariantID).Msg("cache: fallo escribiendo disponibilidad")
	}
}

// Invalidate elimina los snapshots de las variantes indicadas. Se llama tras
// cada mutación confirmada para que la siguiente lectura venga de la BD.
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, organizationID string, variantIDs ...string) {
	if len(variantIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(variantIDs))
	for _, id := range variantIDs {
		keys = append(keys, availabilityKey(organizationID, id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Int("keys", len(keys)).Msg("cache: fallo invalidando disponibilidad")
	}
}
