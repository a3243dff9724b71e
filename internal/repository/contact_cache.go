package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/deppfellow/contacts-service/internal/model"
)

const (
	cacheKeyPrefix = "contacts:"

	// generation keys outlive entries so a slow reader still sees the bump.
	generationTTL = 24 * time.Hour
)

// ContactCache is a read-through redis cache in front of another
// ContactRepository. Only single-contact reads are cached; writes go to
// the store first and then evict the cached entry.
//
// Every write also bumps a per-contact generation. A read only fills the
// cache when the generation it saw before reading the store is still
// current, so a read racing a write cannot put the old document back.
//
// Redis failures are logged and never fail a call.
type ContactCache struct {
	next   ContactRepository
	client redis.UniversalClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewContactCache(next ContactRepository, client redis.UniversalClient, ttl time.Duration, log *zerolog.Logger) *ContactCache {
	return &ContactCache{next: next, client: client, ttl: ttl, log: log}
}

func cacheKey(id string) string {
	return cacheKeyPrefix + id
}

func generationKey(id string) string {
	return cacheKeyPrefix + id + ":gen"
}

func (r *ContactCache) List(ctx context.Context) ([]model.Contact, error) {
	return r.next.List(ctx)
}

func (r *ContactCache) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	if contact, ok := r.get(ctx, id); ok {
		return contact, nil
	}

	gen, genErr := r.generation(ctx, r.client, id)

	contact, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		r.fill(ctx, id, gen, contact)
	}
	return contact, nil
}

func (r *ContactCache) Create(ctx context.Context, fields model.ContactFields) (*model.Contact, error) {
	return r.next.Create(ctx, fields)
}

func (r *ContactCache) UpdateByID(ctx context.Context, id string, fields model.ContactFields) error {
	if err := r.next.UpdateByID(ctx, id, fields); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *ContactCache) DeleteByID(ctx context.Context, id string) error {
	if err := r.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// Ping checks the store only; the cache is optional.
func (r *ContactCache) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// logger prefers the request logger carried by ctx.
func (r *ContactCache) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return r.log
}

func (r *ContactCache) get(ctx context.Context, id string) (*model.Contact, bool) {
	raw, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger(ctx).Warn().Err(err).Str("contact_id", id).Msg("contact cache read failed")
		}
		return nil, false
	}

	var contact model.Contact
	if err := bson.Unmarshal(raw, &contact); err != nil {
		r.logger(ctx).Warn().Err(err).Str("contact_id", id).Msg("dropping undecodable cache entry")
		r.invalidate(ctx, id)
		return nil, false
	}

	return &contact, true
}

// generation returns the write counter of id; a missing key is 0.
func (r *ContactCache) generation(ctx context.Context, c redis.Cmdable, id string) (int64, error) {
	gen, err := c.Get(ctx, generationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		r.logger(ctx).Warn().Err(err).Str("contact_id", id).Msg("contact cache generation read failed")
	}
	return gen, err
}

// fill stores contact unless id was written since gen was read. The
// WATCH covers writes landing between the check and the SET.
func (r *ContactCache) fill(ctx context.Context, id string, gen int64, contact *model.Contact) {
	raw, err := bson.Marshal(contact)
	if err != nil {
		r.logger(ctx).Warn().Err(err).Msg("contact cache encode failed")
		return
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.generation(ctx, tx, id)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cacheKey(id), raw, r.ttl)
			return nil
		})
		return err
	}, generationKey(id))

	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		r.logger(ctx).Warn().Err(err).Str("contact_id", id).Msg("contact cache write failed")
	}
}

// invalidate bumps the generation and drops the entry in one round trip.
func (r *ContactCache) invalidate(ctx context.Context, id string) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(id))
		pipe.Expire(ctx, generationKey(id), generationTTL)
		pipe.Del(ctx, cacheKey(id))
		return nil
	})
	if err != nil {
		r.logger(ctx).Warn().Err(err).Str("contact_id", id).Msg("contact cache evict failed")
	}
}
