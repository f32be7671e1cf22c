package tgbotbase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

var ErrBadPropertyName = errors.New("property name must not contain ':'")

type RedisPropertyStorage struct {
	client *redis.Client
}

func NewRedisPropertyStorage(pool RedisPool) (*RedisPropertyStorage, error) {
	client, err := pool.GetConnByName("property")
	if err != nil {
		return nil, err
	}
	return &RedisPropertyStorage{client: client}, nil
}

func redisPropertyKey(name string, user UserID, chat ChatID) string {
	return fmt.Sprintf("tg:property:%s:%d:%d", name, user, chat)
}

func checkPropertyName(name string) error {
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("%w: %q", ErrBadPropertyName, name)
	}
	return nil
}

func (r *RedisPropertyStorage) SetPropertyForUserInChat(ctx context.Context, name string, user UserID, chat ChatID, value interface{}) error {
	if err := checkPropertyName(name); err != nil {
		return err
	}
	log.WithFields(log.Fields{"name": name, "user": user, "chat": chat, "value": value}).Debug("setting property")
	return r.client.Set(ctx, redisPropertyKey(name, user, chat), value, 0).Err()
}

func (r *RedisPropertyStorage) SetPropertyForUser(ctx context.Context, name string, user UserID, value interface{}) error {
	return r.SetPropertyForUserInChat(ctx, name, user, ChatID(user), value)
}

func (r *RedisPropertyStorage) SetPropertyForChat(ctx context.Context, name string, chat ChatID, value interface{}) error {
	return r.SetPropertyForUserInChat(ctx, name, 0, chat, value)
}

// GetProperty returns an empty string when none of the fallbacks is set.
func (r *RedisPropertyStorage) GetProperty(ctx context.Context, name string, user UserID, chat ChatID) (string, error) {
	if err := checkPropertyName(name); err != nil {
		return "", err
	}
	keys := []string{
		redisPropertyKey(name, user, chat),
		redisPropertyKey(name, user, ChatID(user)),
		redisPropertyKey(name, 0, chat),
	}
	for _, key := range keys {
		val, err := r.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", err
		}
		return val, nil
	}

	log.WithFields(log.Fields{"name": name, "user": user, "chat": chat}).Debug("no property found")
	return "", nil
}

// GetEveryHavingProperty lists every stored value of the property ordered by
// chat and then by user.
func (r *RedisPropertyStorage) GetEveryHavingProperty(ctx context.Context, name string) ([]PropertyValue, error) {
	if err := checkPropertyName(name); err != nil {
		return nil, err
	}
	keys, err := GetAllKeys(ctx, r.client, fmt.Sprintf("tg:property:%s:*:*", name))
	if err != nil {
		return nil, err
	}

	props := make([]PropertyValue, 0, len(keys))
	for _, k := range keys {
		user, chat, err := parsePropertyKey(k)
		if err != nil {
			log.WithFields(log.Fields{"key": k, "err": err}).Warn("skipping unexpected property key")
			continue
		}
		value, err := r.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		props = append(props, PropertyValue{User: user, Chat: chat, Value: value})
	}

	slices.SortFunc(props, func(a, b PropertyValue) int {
		if a.Chat != b.Chat {
			return compareInt64(int64(a.Chat), int64(b.Chat))
		}
		return compareInt64(int64(a.User), int64(b.User))
	})
	return props, nil
}

func parsePropertyKey(k string) (UserID, ChatID, error) {
	parts := strings.Split(k, ":")
	if len(parts) != 5 {
		return 0, 0, fmt.Errorf("unexpected number of parts %d", len(parts))
	}
	user, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad user: %w", err)
	}
	chat, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad chat: %w", err)
	}
	return UserID(user), ChatID(chat), nil
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var _ PropertyStorage = &RedisPropertyStorage{}
