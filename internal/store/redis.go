package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatchSize = 100

// RedisStore keeps each scenario as a JSON string under prefix+name.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore wraps an existing client. A zero ttl stores keys without
// expiry; an empty prefix uses constants.DefaultRedisKeyPrefix.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

// Save sets the scenario key, replacing any previous document.
func (s *RedisStore) Save(ctx context.Context, doc Document) error {
	doc, err := prepare(doc)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode scenario %s: %w", doc.Name, err)
	}
	if err := s.client.Set(ctx, s.key(doc.Name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save scenario %s: %w", doc.Name, err)
	}

	s.logger.Debug("saved scenario",
		zap.String("op", "store.RedisStore.Save"),
		zap.String("scenario", doc.Name),
		zap.String("id", doc.ID),
		zap.Duration("ttl", s.ttl),
	)
	return nil
}

// Load fetches the scenario key.
func (s *RedisStore) Load(ctx context.Context, name string) (Document, error) {
	if err := checkName(name); err != nil {
		return Document{}, err
	}

	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("load scenario %s: %w", name, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode scenario %s: %w", name, err)
	}
	return doc, nil
}

// List walks the key space with SCAN rather than KEYS.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	pattern := escapeGlob(s.prefix) + "*"
	seen := make(map[string]struct{})
	names := []string{}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("list scenarios: %w", err)
		}
		for _, key := range keys {
			name := strings.TrimPrefix(key, s.prefix)
			// SCAN may return a key more than once.
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes the scenario key.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	removed, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", name, err)
	}
	if removed == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted scenario",
		zap.String("op", "store.RedisStore.Delete"),
		zap.String("scenario", name),
	)
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as wildcards.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
