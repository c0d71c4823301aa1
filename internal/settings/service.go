// Package settings serves mutable application settings, read through redis.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/segyhp/rent-engine/internal/repository"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

const (
	// KeyPaymentDueDays holds the collection grace period in days.
	KeyPaymentDueDays = "payment_due_days"

	cacheKeyPrefix = "settings:"
)

type Service struct {
	repo         repository.SettingsRepository
	cache        Cache
	ttl          time.Duration
	defaultGrace int
	log          zerolog.Logger
}

func NewService(repo repository.SettingsRepository, cache Cache, ttl time.Duration, defaultGrace int, log zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		ttl:          ttl,
		defaultGrace: defaultGrace,
		log:          log,
	}
}

// GraceDays returns the current grace period: cache, then database, then the
// configured default. Cache failures are logged and bypassed.
func (s *Service) GraceDays(ctx context.Context) (int, error) {
	cacheKey := cacheKeyPrefix + KeyPaymentDueDays

	raw, err := s.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		if days, convErr := parseDays(raw); convErr == nil {
			return days, nil
		}
		s.log.Warn().Str("key", cacheKey).Str("value", raw).Msg("discarding malformed cached setting")
	case !errors.Is(err, ErrCacheMiss):
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("settings cache unavailable")
	}

	days := s.defaultGrace
	raw, err = s.repo.Get(ctx, KeyPaymentDueDays)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, customError.WrapDatabaseError(err)
	default:
		parsed, convErr := parseDays(raw)
		if convErr != nil {
			s.log.Warn().Str("key", KeyPaymentDueDays).Str("value", raw).Msg("stored setting is malformed, using default")
		} else {
			days = parsed
		}
	}

	if err := s.cache.Set(ctx, cacheKey, strconv.Itoa(days), s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache setting")
	}
	return days, nil
}

// SetGraceDays stores a new grace period and drops the cached copy.
func (s *Service) SetGraceDays(ctx context.Context, days int) error {
	if days < 0 {
		return customError.WrapInvalidGraceDays(days)
	}
	if err := s.repo.Set(ctx, KeyPaymentDueDays, strconv.Itoa(days)); err != nil {
		return customError.WrapDatabaseError(err)
	}
	if err := s.cache.Del(ctx, cacheKeyPrefix+KeyPaymentDueDays); err != nil {
		return customError.WrapCacheError(err)
	}
	s.log.Info().Int("grace_days", days).Msg("grace period updated")
	return nil
}

func parseDays(raw string) (int, error) {
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if days < 0 {
		return 0, fmt.Errorf("negative days %d", days)
	}
	return days, nil
}
