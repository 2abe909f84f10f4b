package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// RedisStore keeps entries as plain Redis strings under a key prefix, letting
// several console processes share one session.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a Store backed by client; prefix namespaces the keys.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "console"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(name string) string {
	return r.prefix + ":" + name
}

func (r *RedisStore) LookupToken() (*oauth2.Token, bool) {
	value, err := r.client.Get(context.Background(), r.key(TokenKey)).Result()
	if err != nil || value == "" {
		return nil, false
	}
	return NewToken(value), true
}

func (r *RedisStore) AddToken(token *oauth2.Token) error {
	if err := r.client.Set(context.Background(), r.key(TokenKey), token.AccessToken, 0).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *RedisStore) RemoveToken() error {
	names := make([]string, 0, len(keys))
	for _, name := range keys {
		names = append(names, r.key(name))
	}
	if err := r.client.Del(context.Background(), names...).Err(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

func (r *RedisStore) LookupProfile() (*Profile, bool) {
	ctx := context.Background()
	values := map[string]string{}
	for _, name := range []string{UsernameKey, RolesKey, LoggedInKey} {
		value, err := r.client.Get(ctx, r.key(name)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, false
		}
		values[name] = value
	}
	return decodeProfile(values)
}

func (r *RedisStore) AddProfile(profile *Profile) error {
	ctx := context.Background()
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, value := range encodeProfile(profile) {
			pipe.Set(ctx, r.key(name), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}
