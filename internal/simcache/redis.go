package simcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"stocksim/internal/config"
	"stocksim/internal/simulation"
)

const (
	resultKeyPrefix = "stocksim:result:"
	tokenKeyPrefix  = "stocksim:token:"
)

// Redis backs the result cache and token store with a shared redis instance
// so multiple service replicas see the same entries. Expiry is enforced by
// redis TTLs; the explicit ExpiresAt check on tokens stays for parity with
// the memory store.
type Redis struct {
	client    *redis.Client
	resultTTL time.Duration
	tokenTTL  time.Duration
}

func NewRedis(cfg config.RedisConfig, resultTTL, tokenTTL time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		resultTTL: resultTTL,
		tokenTTL:  tokenTTL,
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, hash string) (*simulation.SimulationResult, error) {
	raw, err := r.client.Get(ctx, resultKeyPrefix+hash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result simulation.SimulationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *Redis) Set(ctx context.Context, hash string, result *simulation.SimulationResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, resultKeyPrefix+hash, raw, r.resultTTL).Err()
}

func (r *Redis) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, resultKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *Redis) Put(ctx context.Context, token string, data simulation.ConfirmationTokenData) error {
	if data.ExpiresAt.IsZero() {
		data.ExpiresAt = time.Now().UTC().Add(r.tokenTTL)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tokenKeyPrefix+token, raw, r.tokenTTL).Err()
}

func (r *Redis) Validate(ctx context.Context, token, scenarioHash string, actionIDs []string) (bool, error) {
	key := tokenKeyPrefix + token
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var data simulation.ConfirmationTokenData
	if err := json.Unmarshal(raw, &data); err != nil {
		return false, err
	}
	if !time.Now().UTC().Before(data.ExpiresAt) {
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	if data.ScenarioHash != scenarioHash {
		return false, nil
	}
	if !sameIDSet(data.ActionIDs, actionIDs) {
		return false, nil
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}
