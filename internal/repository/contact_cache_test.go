package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/contacts-service/internal/model"
)

func TestContactCache_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()

	testContactRepository(t, func(t *testing.T) ContactRepository {
		return NewContactCache(NewContactMemory("contacts"), client, time.Minute, &logger)
	})
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: startRedis(t)})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func forgetCached(t *testing.T, client *redis.Client, id string) {
	t.Cleanup(func() { client.Del(context.Background(), cacheKey(id), generationKey(id)) })
}

func TestContactCache_Redis(t *testing.T) {
	client := newRedisClient(t)
	logger := zerolog.Nop()

	t.Run("contract", func(t *testing.T) {
		testContactRepository(t, func(t *testing.T) ContactRepository {
			return NewContactCache(NewContactMemory("contacts"), client, time.Minute, &logger)
		})
	})

	t.Run("read through and evict", func(t *testing.T) {
		ctx := context.Background()
		store := NewContactMemory("contacts")
		cache := NewContactCache(store, client, time.Minute, &logger)

		created, err := cache.Create(ctx, model.ContactFields{Name: "Ada", Phone: "555-0100"})
		require.NoError(t, err)
		id := created.ID.Hex()
		forgetCached(t, client, id)

		got, err := cache.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		n, err := client.Exists(ctx, cacheKey(id)).Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		// Served from the cache even though the store changed underneath.
		require.NoError(t, store.UpdateByID(ctx, id, model.ContactFields{Name: "Ada L.", Phone: "555-0100"}))
		got, err = cache.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)

		require.NoError(t, cache.UpdateByID(ctx, id, model.ContactFields{Name: "Ada K.", Phone: "555-0100"}))
		n, err = client.Exists(ctx, cacheKey(id)).Result()
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err = cache.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Ada K.", got.Name)

		require.NoError(t, cache.DeleteByID(ctx, id))
		_, err = cache.GetByID(ctx, id)
		assert.Error(t, err)
	})
}

// pausingStore holds the first GetByID after it has read the store until
// resume is closed.
type pausingStore struct {
	ContactRepository
	read   chan struct{}
	resume chan struct{}
}

func (s *pausingStore) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.ContactRepository.GetByID(ctx, id)
	if s.read != nil {
		close(s.read)
		s.read = nil
		<-s.resume
	}
	return contact, err
}

func TestContactCache_ReadRacingUpdateDoesNotRestoreStaleEntry(t *testing.T) {
	client := newRedisClient(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	store := &pausingStore{ContactRepository: NewContactMemory("contacts")}
	cache := NewContactCache(store, client, time.Minute, &logger)

	created, err := cache.Create(ctx, model.ContactFields{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	id := created.ID.Hex()
	forgetCached(t, client, id)

	read := make(chan struct{})
	store.read, store.resume = read, make(chan struct{})

	type result struct {
		contact *model.Contact
		err     error
	}
	done := make(chan result, 1)
	go func() {
		contact, err := cache.GetByID(ctx, id)
		done <- result{contact, err}
	}()

	// The reader now holds the old document and has not filled the cache.
	<-read
	require.NoError(t, cache.UpdateByID(ctx, id, model.ContactFields{Name: "Ada K.", Phone: "555-0100"}))
	close(store.resume)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "Ada", res.contact.Name)

	n, err := client.Exists(ctx, cacheKey(id)).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "stale read must not be cached after an update")

	got, err := cache.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada K.", got.Name)
}
