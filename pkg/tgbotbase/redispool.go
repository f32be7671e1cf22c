package tgbotbase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// RedisPool hands out clients for logical databases. Names are resolved
// through "db:<name>" keys holding the DB index in DB 0.
type RedisPool interface {
	GetConnByID(dbID int) *redis.Client
	GetConnByName(dbName string) (*redis.Client, error)
	Close() error
}

type RedisConfig struct {
	Server string
	Pass   string
}

type redisPool struct {
	cfg RedisConfig
	db  map[string]int

	mu      sync.Mutex
	clients map[int]*redis.Client
}

func NewRedisPool(ctx context.Context, cfg RedisConfig) (RedisPool, error) {
	pool := &redisPool{
		cfg:     cfg,
		db:      make(map[string]int, 10),
		clients: make(map[int]*redis.Client, 10),
	}

	conn := pool.GetConnByID(0)
	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot reach redis at %s: %w", cfg.Server, err)
	}

	keys, err := GetAllKeys(ctx, conn, "db:*")
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		dbID, err := conn.Get(ctx, key).Int()
		if err != nil {
			log.WithFields(log.Fields{"key": key, "err": err}).Warn("could not get db id, skipping")
			continue
		}
		name := strings.TrimPrefix(key, "db:")
		log.WithFields(log.Fields{"name": name, "db": dbID}).Debug("redis db discovered")
		pool.db[name] = dbID
	}

	return pool, nil
}

func (pool *redisPool) GetConnByID(dbID int) *redis.Client {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if c, found := pool.clients[dbID]; found {
		return c
	}
	c := redis.NewClient(&redis.Options{
		Addr:     pool.cfg.Server,
		Password: pool.cfg.Pass,
		DB:       dbID,
	})
	pool.clients[dbID] = c
	return c
}

func (pool *redisPool) GetConnByName(dbName string) (*redis.Client, error) {
	dbID, found := pool.db[dbName]
	if !found {
		return nil, fmt.Errorf("redis db %q is not known to the pool, set key db:%s", dbName, dbName)
	}
	return pool.GetConnByID(dbID), nil
}

func (pool *redisPool) Close() error {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	var firstErr error
	for id, c := range pool.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(pool.clients, id)
	}
	return firstErr
}

// GetAllKeys returns the sorted unique keys matching the pattern.
func GetAllKeys(ctx context.Context, conn *redis.Client, matchPattern string) ([]string, error) {
	result := make([]string, 0)
	var cursor uint64
	for {
		keys, next, err := conn.Scan(ctx, cursor, matchPattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", matchPattern, err)
		}
		result = append(result, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	slices.Sort(result)
	result = slices.Compact(result)
	log.WithFields(log.Fields{"pattern": matchPattern, "keys": len(result)}).Debug("redis scan finished")
	return result, nil
}
