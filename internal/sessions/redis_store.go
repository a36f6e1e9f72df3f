package sessions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

const keyPrefix = "workx:session:"

type RedisStore struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisStore(client rueidis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Create(ctx context.Context, p Principal) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	cmd := r.client.B().Set().
		Key(keyPrefix + token).
		Value(string(payload)).
		ExSeconds(int64(r.ttl.Seconds())).
		Build()

	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return "", err
	}

	return token, nil
}

func (r *RedisStore) Resolve(ctx context.Context, token string) (*Principal, error) {
	cmd := r.client.B().Get().Key(keyPrefix + token).Build()
	result := r.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	raw, err := result.AsBytes()
	if err != nil {
		return nil, err
	}

	var p Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *RedisStore) Destroy(ctx context.Context, token string) error {
	cmd := r.client.B().Del().Key(keyPrefix + token).Build()
	return r.client.Do(ctx, cmd).Error()
}
