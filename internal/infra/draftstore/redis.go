package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "booking:draft:"

// createScript refuses to overwrite an existing draft.
// KEYS[1]=draft key, ARGV[1]=version, ARGV[2]=payload, ARGV[3]=ttl ms
const createScript = `
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1`

// saveScript writes only when the stored version matches the caller's.
// KEYS[1]=draft key, ARGV[1]=expected version, ARGV[2]=next version, ARGV[3]=payload, ARGV[4]=ttl ms
// Returns -1 when the draft is missing, 0 on version mismatch, 1 on success.
const saveScript = `
local current = redis.call('HGET', KEYS[1], 'version')
if not current then
	return -1
end
if current ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[2], 'data', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1`

// unlockScript deletes the submit lock only while ARGV[1] still owns it.
const unlockScript = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0`

type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, cfg config.DraftConfig) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: cfg.TTL}
}

var _ shared.DraftStore = (*RedisStore)(nil)

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (s *RedisStore) Create(ctx context.Context, d *booking.Draft) error {
	d.Version = 1
	payload, err := encode(d)
	if err != nil {
		return infra.WrapRepoErr("failed to encode draft", err, infra.KindCacheFailure)
	}

	res, err := s.rdb.Eval(ctx, createScript, []string{key(d.ID)}, "1", payload, s.ttl.Milliseconds()).Int64()
	if err != nil {
		return infra.WrapRepoErr("failed to create draft", err, infra.KindCacheFailure)
	}
	if res == 0 {
		return infra.WrapRepoErr("draft already exists", nil, infra.KindDuplicateKey)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*booking.Draft, error) {
	raw, err := s.rdb.HGet(ctx, key(id), "data").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("draft not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load draft", err, infra.KindCacheFailure)
	}

	var rec draftRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, infra.WrapRepoErr("failed to decode draft", err, infra.KindCacheFailure)
	}
	d, err := fromRecord(rec)
	if err != nil {
		return nil, infra.WrapRepoErr("stored draft is invalid", err, infra.KindCacheFailure)
	}
	return d, nil
}

// Save writes d when nobody else saved since d was loaded, then advances d.Version.
func (s *RedisStore) Save(ctx context.Context, d *booking.Draft) error {
	expected := d.Version
	d.Version = expected + 1
	payload, err := encode(d)
	if err != nil {
		d.Version = expected
		return infra.WrapRepoErr("failed to encode draft", err, infra.KindCacheFailure)
	}

	res, err := s.rdb.Eval(ctx, saveScript, []string{key(d.ID)},
		formatVersion(expected), formatVersion(d.Version), payload, s.ttl.Milliseconds()).Int64()
	if err != nil {
		d.Version = expected
		return infra.WrapRepoErr("failed to save draft", err, infra.KindCacheFailure)
	}

	switch res {
	case 1:
		return nil
	case -1:
		d.Version = expected
		return infra.WrapRepoErr("draft expired before save", nil, infra.KindNotFound)
	default:
		d.Version = expected
		return infra.WrapRepoErr("draft modified concurrently", nil, infra.KindConflict)
	}
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete draft", err, infra.KindCacheFailure)
	}
	return nil
}

func submitLockKey(id uuid.UUID) string {
	return key(id) + ":submit"
}

func (s *RedisStore) AcquireSubmitLock(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, submitLockKey(id), token, ttl).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to lock draft for submit", err, infra.KindCacheFailure)
	}
	return ok, nil
}

func (s *RedisStore) ReleaseSubmitLock(ctx context.Context, id uuid.UUID, token string) error {
	if err := s.rdb.Eval(ctx, unlockScript, []string{submitLockKey(id)}, token).Err(); err != nil {
		return infra.WrapRepoErr("failed to unlock draft", err, infra.KindCacheFailure)
	}
	return nil
}

func encode(d *booking.Draft) (string, error) {
	b, err := json.Marshal(toRecord(d))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
