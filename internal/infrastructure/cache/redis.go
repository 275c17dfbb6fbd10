// Package cache cliente Redis y caché JSON versionada.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options conexión a Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New crea el cliente Redis y verifica la conexión.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// Cache caché JSON con invalidación por versión: Bump incrementa la versión y deja
// huérfanas todas las llaves anteriores, que expiran por TTL.
// Un Cache nil o sin cliente degrada a llamar siempre al loader.
type Cache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewCache construye la caché para un espacio de llaves.
func NewCache(client *redis.Client, namespace string, ttl time.Duration) *Cache {
	return &Cache{client: client, namespace: namespace, ttl: ttl}
}

func (c *Cache) versionKey() string {
	return c.namespace + ":version"
}

// Version devuelve la versión vigente, inicializándola si no existe.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, c.versionKey(), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, c.versionKey(), ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey compone la llave con el namespace y la versión vigente.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	if c == nil || c.client == nil {
		return strings.Join(parts, ":"), nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%d", c.namespace, strings.Join(parts, ":"), ver), nil
}

// FetchJSON lee la llave o la puebla con loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return roundTrip(value, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida la caché incrementando la versión y publica el evento en <namespace>.bump.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, c.versionKey()).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, c.namespace+".bump", strconv.FormatInt(ver, 10)).Err()
}

func roundTrip(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
