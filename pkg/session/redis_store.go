package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis as JSON. Keys expire with the session.
//
// Layout: "{prefix}:t:{token}" holds the session, "{prefix}:i:{id}" holds the
// current token so sessions can be deleted by ID.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. An empty prefix defaults to "session".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) tokenKey(token string) string { return r.prefix + ":t:" + token }
func (r *RedisStore) idKey(id string) string       { return r.prefix + ":i:" + id }

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	return r.write(ctx, s, "")
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	oldToken, err := r.client.Get(ctx, r.idKey(s.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return r.write(ctx, s, oldToken)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	token, err := r.client.Get(ctx, r.idKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return r.client.Del(ctx, r.tokenKey(token), r.idKey(id)).Err()
}

// write stores the session and its id index atomically, removing the
// previous token key when the token was rotated.
func (r *RedisStore) write(ctx context.Context, s *Session, oldToken string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	ttl := s.TTL()
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", ErrExpired, s.ID)
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if oldToken != "" && oldToken != s.Token {
			p.Del(ctx, r.tokenKey(oldToken))
		}
		p.Set(ctx, r.tokenKey(s.Token), data, ttl)
		p.Set(ctx, r.idKey(s.ID), s.Token, ttl)
		return nil
	})
	return err
}

var _ Store = (*RedisStore)(nil)
