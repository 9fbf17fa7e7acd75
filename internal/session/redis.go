package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-booking-bot/internal/model"
)

// RedisStore keeps drafts and locale preferences in Redis.  Drafts are
// JSON values under session:draft:<holder> with a TTL refreshed on every
// write, so idle expiry is Redis's job rather than a janitor's.  Locales
// live under session:locale:<holder> without a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client.  A ttl of zero falls back
// to DefaultDraftTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("nil redis client passed to NewRedisStore")
	}
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(holderID int64) string  { return fmt.Sprintf("session:draft:%d", holderID) }
func localeKey(holderID int64) string { return fmt.Sprintf("session:locale:%d", holderID) }

func (s *RedisStore) Draft(ctx context.Context, holderID int64) (model.Draft, bool, error) {
	raw, err := s.client.Get(ctx, draftKey(holderID)).Result()
	if err == redis.Nil {
		return model.Draft{}, false, nil
	}
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}
	var d model.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return model.Draft{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return d, true, nil
}

func (s *RedisStore) PutDraft(ctx context.Context, holderID int64, d model.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(holderID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearDraft(ctx context.Context, holderID int64) error {
	if err := s.client.Del(ctx, draftKey(holderID)).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Locale(ctx context.Context, holderID int64) (model.Locale, bool, error) {
	raw, err := s.client.Get(ctx, localeKey(holderID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get locale: %w", err)
	}
	loc, ok := model.ParseLocale(raw)
	if !ok {
		// A value written by an older build; treat as unset.
		return "", false, nil
	}
	return loc, true, nil
}

func (s *RedisStore) SetLocale(ctx context.Context, holderID int64, loc model.Locale) error {
	if err := s.client.Set(ctx, localeKey(holderID), string(loc), 0).Err(); err != nil {
		return fmt.Errorf("set locale: %w", err)
	}
	return nil
}
