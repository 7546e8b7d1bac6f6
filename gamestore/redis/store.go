// Package redis is a redis-backed game store. Snapshots are stored
// as JSON strings under wordbattle:game:<id>, with a TTL so abandoned
// games eventually disappear on their own.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jabibo/wordbattle-backend-sub000/game"
	"github.com/jabibo/wordbattle-backend-sub000/gamestore"
)

const keyPrefix = "wordbattle"

func gameKey(id string) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// Config holds connection and expiry settings.
type Config struct {
	// URL is the redis connection URL (e.g. redis://localhost:6379).
	URL string

	PoolSize     int
	MinIdleConns int

	// GameExpiry is the TTL on saved games; every save renews it.
	// Zero keeps games forever.
	GameExpiry time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		GameExpiry:   30 * 24 * time.Hour,
	}
}

type Store struct {
	client *redis.Client
	cfg    Config
}

// Open connects to redis and verifies the connection, retrying a few
// times so a store and its redis container can start together.
func Open(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	client := redis.NewClient(opts)

	err = retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx).Err()
		},
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n).Err(err).Msg("redis ping failed, retrying")
		}),
	)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient wraps an existing client, for tests.
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ gamestore.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, snap *game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gameKey(snap.GameID), data, s.cfg.GameExpiry).Err()
}

func (s *Store) Get(ctx context.Context, id string) (*game.Snapshot, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gamestore.ErrNotFound
		}
		return nil, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	iter := s.client.Scan(ctx, 0, gameKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix+":game:"))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
