package service

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
)

// Redis: SMEMBERS/SADD, повторное добавление идемпотентно.
type Redis struct {
	client *goredis.Client
}

func NewRedis(client *goredis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Members(ctx context.Context, key string) (out map[string]struct{}, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Redis.Members: %w", err)
		}
	}()

	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		if err == goredis.Nil {
			return map[string]struct{}{}, nil
		}
		return nil, err
	}

	out = make(map[string]struct{}, len(members))
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out, nil
}

func (r *Redis) AddMembers(ctx context.Context, key string, ids ...string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Redis.AddMembers: %w", err)
		}
	}()
	if len(ids) == 0 {
		return nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.client.SAdd(ctx, key, args...).Err()
}
