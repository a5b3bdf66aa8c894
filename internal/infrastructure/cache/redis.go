package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// Verificar en tiempo de compilación que RedisAverageCache implementa AverageCache.
var _ usecase.AverageCache = (*RedisAverageCache)(nil)

const (
	avgKeyPrefix = "avg:"
	avgTTL       = time.Minute
	opTimeout    = 2 * time.Second
)

// RedisAverageCache cache de lectura del promedio de precio por subárbol.
// Cualquier fallo de Redis degrada a la consulta directa a la base; nunca se
// propaga como error al llamador.
type RedisAverageCache struct {
	rdb *redis.Client
}

// NewRedisAverageCache crea el cliente y verifica la conexión con un ping.
func NewRedisAverageCache(addr, password string) (*RedisAverageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisAverageCache{rdb: client}, nil
}

// GetAverage devuelve el promedio cacheado de la categoría, si existe.
func (c *RedisAverageCache) GetAverage(categoryID string) (decimal.Decimal, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := c.rdb.Get(ctx, avgKeyPrefix+categoryID).Result()
	if err != nil {
		return decimal.Zero, false
	}
	avg, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return avg, true
}

// SetAverage guarda el promedio con TTL corto.
func (c *RedisAverageCache) SetAverage(categoryID string, avg decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_ = c.rdb.Set(ctx, avgKeyPrefix+categoryID, avg.String(), avgTTL).Err()
}

// InvalidateAverages purga todos los promedios cacheados. Las escrituras de
// catálogo mueven el promedio de todos los ancestros de la categoría tocada,
// así que se invalida el espacio completo en lugar de recorrer el árbol.
func (c *RedisAverageCache) InvalidateAverages() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	iter := c.rdb.Scan(ctx, 0, avgKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}

// Close cierra el cliente Redis.
func (c *RedisAverageCache) Close() error {
	return c.rdb.Close()
}
