package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// SettingsService wraps the key→value preference store and the url-keyed
// response cache.
type SettingsService struct {
	settings repositories.SettingsRepository
	cache    repositories.CacheRepository
	logger   *slog.Logger
	now      func() int64
}

func NewSettingsService(settings repositories.SettingsRepository, cache repositories.CacheRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		cache:    cache,
		logger:   logger,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Get returns the raw JSON value for a key, ErrNotFound if absent.
func (s *SettingsService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	return s.settings.Get(ctx, key)
}

// Set upserts a key's value. The value must be valid JSON; anything a
// client can encode is accepted.
func (s *SettingsService) Set(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: value is not valid JSON", domain.ErrValidation)
	}
	return s.settings.Set(ctx, key, value)
}

// Delete removes a key. Idempotent.
func (s *SettingsService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	return s.settings.Delete(ctx, key)
}

// CacheGet returns a cached response if present and unexpired.
func (s *SettingsService) CacheGet(ctx context.Context, url string) (*models.CacheEntry, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrValidation)
	}

	entry, err := s.cache.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if entry.Expires > 0 && entry.Expires <= s.now() {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// CachePut stores a response under its url.
func (s *SettingsService) CachePut(ctx context.Context, entry *models.CacheEntry) error {
	if entry.URL == "" {
		return fmt.Errorf("%w: url is required", domain.ErrValidation)
	}
	return s.cache.Put(ctx, entry)
}

// PruneCache drops expired cache entries. Called at startup so the cache
// table never grows without bound.
func (s *SettingsService) PruneCache(ctx context.Context) error {
	if err := s.cache.Prune(ctx, s.now()); err != nil {
		return err
	}
	s.logger.Debug("cache pruned")
	return nil
}
