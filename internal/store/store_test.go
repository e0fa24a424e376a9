package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/engine"
	"github.com/lucaspazio/Financial-Model/pkg/validation"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestRedis creates a test Redis instance using miniredis
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	t.Cleanup(func() {
		s.Close()
	})
	return s, client
}

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store {
			return NewFileStore(filepath.Join(t.TempDir(), "scenarios"), zap.NewNop())
		},
		"redis": func(t *testing.T) Store {
			_, client := setupTestRedis(t)
			return NewRedisStore(client, "", 0, zap.NewNop())
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "db", "scenarios.db"), zap.NewNop())
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer func() {
				assert.NoError(t, s.Close())
			}()

			names, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, names)

			_, err = s.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, "missing"), ErrNotFound)

			scales := config.DefaultScaleParameters()
			scales.MAU = 1.5
			result := engine.Compute(baseline.Default(), scales)

			withResults := NewDocument("growth case", scales, result)
			require.NoError(t, s.Save(ctx, withResults))
			require.NoError(t, s.Save(ctx, NewDocument("alpha", config.DefaultScaleParameters(), nil)))

			loaded, err := s.Load(ctx, "growth case")
			require.NoError(t, err)
			assert.Equal(t, withResults.Name, loaded.Name)
			assert.Equal(t, withResults.ID, loaded.ID)
			assert.True(t, withResults.SavedAt.Equal(loaded.SavedAt), "savedAt %v != %v", withResults.SavedAt, loaded.SavedAt)
			assert.Equal(t, scales, loaded.Scales)
			require.NotNil(t, loaded.Forecast)
			assert.Equal(t, result.MAU, loaded.Forecast.MAU)
			assert.Equal(t, result.Overall, loaded.Forecast.Overall)

			alpha, err := s.Load(ctx, "alpha")
			require.NoError(t, err)
			assert.Nil(t, alpha.Forecast)

			names, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"alpha", "growth case"}, names)

			replacement := NewDocument("alpha", scales, nil)
			require.NoError(t, s.Save(ctx, replacement))
			alpha, err = s.Load(ctx, "alpha")
			require.NoError(t, err)
			assert.Equal(t, replacement.ID, alpha.ID)
			assert.Equal(t, 1.5, alpha.Scales.MAU)

			require.NoError(t, s.Delete(ctx, "alpha"))
			_, err = s.Load(ctx, "alpha")
			assert.ErrorIs(t, err, ErrNotFound)

			names, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"growth case"}, names)
		})
	}
}

func TestStoreRejectsInvalidNames(t *testing.T) {
	invalid := []string{"", ".hidden", "../escape", "a/b", "key*"}

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			for _, bad := range invalid {
				err := s.Save(ctx, NewDocument(bad, config.DefaultScaleParameters(), nil))
				assert.ErrorIs(t, err, validation.ErrInvalidScenarioName, "save %q", bad)

				_, err = s.Load(ctx, bad)
				assert.ErrorIs(t, err, validation.ErrInvalidScenarioName, "load %q", bad)

				err = s.Delete(ctx, bad)
				assert.ErrorIs(t, err, validation.ErrInvalidScenarioName, "delete %q", bad)
			}
		})
	}
}

func TestStoreFillsMissingIdentity(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			require.NoError(t, s.Save(ctx, Document{Name: "bare", Scales: config.DefaultScaleParameters()}))
			doc, err := s.Load(ctx, "bare")
			require.NoError(t, err)
			assert.NotEmpty(t, doc.ID)
			assert.False(t, doc.SavedAt.IsZero())
		})
	}
}

func TestDocumentDecodesOlderLayouts(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected func(p *config.ScaleParameters)
	}{
		{
			name:     "Partial scales object",
			data:     `{"name": "partial", "scales": {"mau_scale": 1.2}}`,
			expected: func(p *config.ScaleParameters) { p.MAU = 1.2 },
		},
		{
			name:     "Null scales",
			data:     `{"name": "empty", "scales": null}`,
			expected: func(p *config.ScaleParameters) {},
		},
		{
			name: "Flat document",
			data: `{"name": "old", "mau_scale": 0.5, "game_conv_scale": 0.8, "notes": "kept from v1"}`,
			expected: func(p *config.ScaleParameters) {
				p.MAU = 0.5
				p.ConvGame = 0.8
			},
		},
		{
			name:     "Flat document with params",
			data:     `{"name": "older", "params": {"staff_scale": "2"}}`,
			expected: func(p *config.ScaleParameters) { p.Staff = 2 },
		},
		{
			name:     "Name only",
			data:     `{"name": "bare"}`,
			expected: func(p *config.ScaleParameters) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := config.DefaultScaleParameters()
			tt.expected(&expected)

			var doc Document
			require.NoError(t, json.Unmarshal([]byte(tt.data), &doc))
			assert.Equal(t, expected, doc.Scales)
			assert.NotEmpty(t, doc.Name)
		})
	}
}

func TestStoreLoadsPartialDocuments(t *testing.T) {
	ctx := context.Background()
	partial := `{"name": "partial", "scales": {"mau_scale": 1.2}}`
	flat := `{"name": "flat", "mau_scale": 0.5}`

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.json"), []byte(partial), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.json"), []byte(flat), 0644))

	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set("partial", partial))
	require.NoError(t, mr.Set("flat", flat))

	sqlite, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "scenarios.db"), zap.NewNop())
	require.NoError(t, err)
	for name, data := range map[string]string{"partial": partial, "flat": flat} {
		_, err := sqlite.db.ExecContext(ctx, upsertScenario, name, "legacy", 0, data)
		require.NoError(t, err)
	}

	stores := map[string]Store{
		"file":   NewFileStore(dir, zap.NewNop()),
		"redis":  NewRedisStore(client, "", 0, zap.NewNop()),
		"sqlite": sqlite,
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			doc, err := s.Load(ctx, "partial")
			require.NoError(t, err)
			assert.Equal(t, 1.2, doc.Scales.MAU)
			assert.Equal(t, 1.0, doc.Scales.Staff)
			assert.Equal(t, 1.0, doc.Scales.Marketing)

			result := engine.Compute(baseline.Default(), doc.Scales)
			assert.Greater(t, result.CostBreakdown.Salaries[6], 0.0)
			assert.Greater(t, result.CostBreakdown.Marketing[6], 0.0)

			doc, err = s.Load(ctx, "flat")
			require.NoError(t, err)
			expected := config.DefaultScaleParameters()
			expected.MAU = 0.5
			assert.Equal(t, expected, doc.Scales)

			result = engine.Compute(baseline.Default(), doc.Scales)
			assert.Equal(t, 1_000_000.0, result.MAU[6])
			assert.Greater(t, result.Revenues[6], 0.0)
		})
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					doc := NewDocument("shared", config.DefaultScaleParameters(), nil)
					assert.NoError(t, s.Save(ctx, doc))
					_, err := s.Load(ctx, "shared")
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			names, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"shared"}, names)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "scenarios")
	s := NewFileStore(dir, nil)

	require.NoError(t, s.Save(ctx, NewDocument("baseline", config.DefaultScaleParameters(), nil)))

	data, err := os.ReadFile(filepath.Join(dir, "baseline.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"name\": \"baseline\"")

	// Stray files are not scenarios.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"baseline"}, names)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))

	_, err := NewFileStore(dir, nil).Load(context.Background(), "broken")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFileStore(t.TempDir(), nil)
	assert.ErrorIs(t, s.Save(ctx, NewDocument("x", config.DefaultScaleParameters(), nil)), context.Canceled)
	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisStoreKeysAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	s := NewRedisStore(client, "fm:", time.Hour, zap.NewNop())
	defer s.Close()

	require.NoError(t, s.Save(ctx, NewDocument("baseline", config.DefaultScaleParameters(), nil)))
	assert.True(t, mr.Exists("fm:baseline"))
	assert.Equal(t, time.Hour, mr.TTL("fm:baseline"))

	// Keys outside the prefix are ignored.
	require.NoError(t, mr.Set("other:thing", "{}"))
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"baseline"}, names)

	mr.FastForward(2 * time.Hour)
	_, err = s.Load(ctx, "baseline")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreListManyKeys(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	s := NewRedisStore(client, "", 0, nil)
	defer s.Close()

	for i := 0; i < 250; i++ {
		require.NoError(t, s.Save(ctx, Document{Name: fmt.Sprintf("scenario-%03d", i)}))
	}
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 250)
	assert.IsIncreasing(t, names)
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	s := NewRedisStore(client, "", 0, nil)
	mr.Close()

	err := s.Save(ctx, NewDocument("x", config.DefaultScaleParameters(), nil))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "scenario:", escapeGlob("scenario:"))
	assert.Equal(t, `a\*b\?\[c\]`, escapeGlob("a*b?[c]"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("file default", func(t *testing.T) {
		s, err := Open(ctx, config.StoreConfig{Path: t.TempDir()}, nil)
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("unknown backend falls back to file", func(t *testing.T) {
		s, err := Open(ctx, config.StoreConfig{Backend: "postgres", Path: t.TempDir()}, nil)
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := Open(ctx, config.StoreConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "s.db")}, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := Open(ctx, config.StoreConfig{Backend: "redis", Address: mr.Addr(), TTL: "30m"}, nil)
		require.NoError(t, err)
		defer s.Close()
		require.IsType(t, &RedisStore{}, s)
		assert.Equal(t, 30*time.Minute, s.(*RedisStore).ttl)
	})

	t.Run("redis bad ttl", func(t *testing.T) {
		_, err := Open(ctx, config.StoreConfig{Backend: "redis", TTL: "soon"}, nil)
		assert.Error(t, err)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, err := Open(ctx, config.StoreConfig{Backend: "redis", Address: addr}, nil)
		assert.Error(t, err)
	})
}
