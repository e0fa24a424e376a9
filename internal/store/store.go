// Package store persists named scenarios. Three backends share one
// interface: a directory of JSON documents, Redis and SQLite.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/engine"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/validation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no scenario is stored under a name.
var ErrNotFound = errors.New("scenario not found")

// Document is a stored scenario. Forecast is only present when the caller
// asked for the computed results to be kept alongside the parameters.
type Document struct {
	Name     string                 `json:"name"`
	ID       string                 `json:"id"`
	SavedAt  time.Time              `json:"savedAt"`
	Scales   config.ScaleParameters `json:"scales"`
	Forecast *engine.Result         `json:"forecast,omitempty"`
}

// UnmarshalJSON also accepts the flat layout older front ends wrote, where
// the scale keys sit beside the name (or under "params") instead of under
// "scales".
func (d *Document) UnmarshalJSON(data []byte) error {
	type document Document
	var aux struct {
		document
		Scales json.RawMessage `json:"scales"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Document(aux.document)

	if len(aux.Scales) > 0 && string(aux.Scales) != "null" {
		return json.Unmarshal(aux.Scales, &d.Scales)
	}

	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if nested, ok := flat["params"].(map[string]interface{}); ok {
		flat = nested
	}
	d.Scales = legacyScales(flat)
	return nil
}

// legacyScales keeps only the recognised scale keys of a flat document.
func legacyScales(flat map[string]interface{}) config.ScaleParameters {
	raw := make(map[string]interface{}, len(config.ScaleKeys))
	for key, value := range flat {
		if _, ok := config.CanonicalScaleKey(key); ok {
			raw[key] = value
		}
	}
	params, _ := config.ParseScaleParameters(raw)
	return params
}

// NewDocument stamps a fresh document for name.
func NewDocument(name string, scales config.ScaleParameters, forecast *engine.Result) Document {
	return Document{
		Name:     name,
		ID:       uuid.NewString(),
		SavedAt:  time.Now().UTC(),
		Scales:   scales,
		Forecast: forecast,
	}
}

// Store is implemented by every scenario backend. Implementations are safe
// for concurrent use.
type Store interface {
	// Save creates or replaces the document stored under doc.Name.
	Save(ctx context.Context, doc Document) error
	// Load returns ErrNotFound when name is absent.
	Load(ctx context.Context, name string) (Document, error)
	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Delete returns ErrNotFound when name is absent.
	Delete(ctx context.Context, name string) error
	Close() error
}

// Open builds the backend selected by cfg.Backend. Unknown backends fall
// back to the file store.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case constants.StoreBackendRedis:
		ttl, err := parseTTL(cfg.TTL)
		if err != nil {
			return nil, err
		}
		address := cfg.Address
		if address == "" {
			address = constants.DefaultRedisAddress
		}
		client := redis.NewClient(&redis.Options{
			Addr:     address,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", address, err)
		}
		logger.Info("using redis scenario store",
			zap.String("op", "store.Open"),
			zap.String("address", address),
		)
		return NewRedisStore(client, cfg.KeyPrefix, ttl, logger), nil

	case constants.StoreBackendSQLite:
		path := cfg.Path
		if path == "" {
			path = constants.DefaultSQLitePath
		}
		logger.Info("using sqlite scenario store",
			zap.String("op", "store.Open"),
			zap.String("path", path),
		)
		return OpenSQLiteStore(ctx, path, logger)

	case "", constants.StoreBackendFile:
	default:
		logger.Warn(fmt.Sprintf("unknown store backend %s, using %s", cfg.Backend, constants.StoreBackendFile),
			zap.String("op", "store.Open"),
		)
	}

	path := cfg.Path
	if path == "" {
		path = constants.DefaultStorePath
	}
	logger.Info("using file scenario store",
		zap.String("op", "store.Open"),
		zap.String("path", path),
	)
	return NewFileStore(path, logger), nil
}

func parseTTL(value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid store ttl %q: %w", value, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("invalid store ttl %q: must not be negative", value)
	}
	return ttl, nil
}

func checkName(name string) error {
	return validation.ValidateScenarioName(name)
}

// prepare validates doc and fills in an ID and timestamp when missing.
func prepare(doc Document) (Document, error) {
	if err := checkName(doc.Name); err != nil {
		return doc, err
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.SavedAt.IsZero() {
		doc.SavedAt = time.Now().UTC()
	}
	return doc, nil
}
