package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores vectors by key. A backend failure is reported as a miss so the
// provider is still asked.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, vec []float32)
}

// CachedProvider memoizes an inner provider by (model, text).
type CachedProvider struct {
	inner Provider
	cache Cache
	model string
}

func NewCachedProvider(inner Provider, c Cache, model string) *CachedProvider {
	return &CachedProvider{inner: inner, cache: c, model: model}
}

func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "emb:" + hex.EncodeToString(sum[:])
}

func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(p.model, text)
	if vec, ok := p.cache.Get(ctx, key); ok {
		return vec, nil
	}
	vec, err := p.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, key, vec)
	return vec, nil
}

// MemoryCache keeps vectors in process.
type MemoryCache struct {
	c *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{c: cache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]float32, bool) {
	x, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	vec := x.([]float32)
	out := make([]float32, len(vec))
	copy(out, vec)
	return out, true
}

func (m *MemoryCache) Set(ctx context.Context, key string, vec []float32) {
	stored := make([]float32, len(vec))
	copy(stored, vec)
	m.c.Set(key, stored, cache.DefaultExpiration)
}

// RedisCache shares vectors between processes. Values are little-endian float32.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]float32, bool) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	vec, err := decodeVector(raw)
	if err != nil {
		return nil, false
	}
	return vec, true
}

func (r *RedisCache) Set(ctx context.Context, key string, vec []float32) {
	_ = r.rdb.Set(ctx, key, encodeVector(vec), r.ttl).Err()
}

var errCorruptVector = errors.New("corrupt cached vector")

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return nil, errCorruptVector
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}
