package availabilityRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookly/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cachePrefix      = "availability:"
	generationPrefix = "availability-gen:"
)

var errStaleFill = errors.New("availability changed since the fill was read")

// cachedAvailabilityRepo is a Redis read-through cache in front of another
// repository. Cache failures are logged and fall through to the inner store.
//
// Every write bumps a per-provider generation counter. A fill only lands if
// the counter still holds the value read before the inner store was queried,
// so a read racing an Upsert can never put the superseded document back.
type cachedAvailabilityRepo struct {
	inner  AvailabilityRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAvailabilityRepo wraps inner with a Redis cache of the given TTL.
func NewCachedAvailabilityRepo(inner AvailabilityRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) AvailabilityRepository {
	return &cachedAvailabilityRepo{inner: inner, client: client, ttl: ttl, logger: logger}
}

func docKey(providerID string) string        { return cachePrefix + providerID }
func generationKey(providerID string) string { return generationPrefix + providerID }

func (r *cachedAvailabilityRepo) GetByProviderID(ctx context.Context, providerID string) (*models.Availability, error) {
	raw, err := r.client.Get(ctx, docKey(providerID)).Bytes()
	switch {
	case err == nil:
		var av models.Availability
		if jsonErr := json.Unmarshal(raw, &av); jsonErr == nil {
			return &av, nil
		}
		r.logger.Warn("Discarding undecodable availability cache entry", zap.String("providerID", providerID))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Availability cache read failed", zap.String("providerID", providerID), zap.Error(err))
	}

	gen, genErr := readGeneration(ctx, r.client, generationKey(providerID))
	av, err := r.inner.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		r.fill(ctx, providerID, gen, av)
	}
	return av, nil
}

func (r *cachedAvailabilityRepo) Upsert(ctx context.Context, av *models.Availability) (*models.Availability, error) {
	stored, err := r.inner.Upsert(ctx, av)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, av.ProviderID)
	return stored, nil
}

func (r *cachedAvailabilityRepo) CreateIfAbsent(ctx context.Context, av *models.Availability) (*models.Availability, error) {
	gen, genErr := readGeneration(ctx, r.client, generationKey(av.ProviderID))
	stored, err := r.inner.CreateIfAbsent(ctx, av)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		r.fill(ctx, av.ProviderID, gen, stored)
	}
	return stored, nil
}

// invalidate bumps the generation and drops the entry in one MULTI/EXEC.
func (r *cachedAvailabilityRepo) invalidate(ctx context.Context, providerID string) {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, generationKey(providerID))
	pipe.Del(ctx, docKey(providerID))
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("Availability cache invalidation failed", zap.String("providerID", providerID), zap.Error(err))
	}
}

// fill caches av unless the generation moved past gen since it was read.
func (r *cachedAvailabilityRepo) fill(ctx context.Context, providerID string, gen int64, av *models.Availability) {
	raw, err := json.Marshal(av)
	if err != nil {
		return
	}

	genKey := generationKey(providerID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, docKey(providerID), raw, r.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("Skipping stale availability cache fill", zap.String("providerID", providerID))
	default:
		r.logger.Warn("Availability cache write failed", zap.String("providerID", providerID), zap.Error(err))
	}
}

// readGeneration treats a missing counter as generation zero.
func readGeneration(ctx context.Context, c redis.Cmdable, key string) (int64, error) {
	gen, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}
