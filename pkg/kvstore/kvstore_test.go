package kvstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func mustKeys(t *testing.T, fp string) keyring.Keyring {
	t.Helper()
	k, err := keyring.Derive(fp)
	require.NoError(t, err)
	return k
}

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	m := kvstore.NewMemory(10)
	m.SetClock(c.Now)

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	got[0] = 'x'
	again, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), again, "returned slices must not alias storage")

	c.Advance(time.Minute)
	_, err = m.Get(ctx, "a")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, m.Delete(ctx, "b"))
	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	assert.ErrorIs(t, m.Set(ctx, "", nil, 0), kvstore.ErrEmptyKey)
}

func TestMemory_Janitor(t *testing.T) {
	t.Parallel()
	m := kvstore.NewMemory(10)
	require.NoError(t, m.Set(context.Background(), "short", []byte("x"), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Janitor(5 * time.Millisecond)(ctx) }()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

type payload struct {
	Code  string `json:"code"`
	Value int    `json:"value"`
}

func TestVault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		v := kvstore.NewVault(kvstore.NewMemory(10), mustKeys(t, "fp"), kvstore.WithVaultClock(c.Now))

		require.NoError(t, v.Put(ctx, "spin", payload{Code: "SPIN10", Value: 10}, 0))

		var out payload
		written, err := v.Fetch(ctx, "spin", &out, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, payload{Code: "SPIN10", Value: 10}, out)
		assert.True(t, written.Equal(c.Now()))
	})

	t.Run("max age expires and deletes", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		backend := kvstore.NewMemory(10)
		v := kvstore.NewVault(backend, mustKeys(t, "fp"), kvstore.WithVaultClock(c.Now))

		require.NoError(t, v.Put(ctx, "modal", true, 0))
		c.Advance(24 * time.Hour)

		var dismissed bool
		_, err := v.Fetch(ctx, "modal", &dismissed, 24*time.Hour)
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
		assert.Zero(t, backend.Len())
	})

	t.Run("zero max age never expires", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		v := kvstore.NewVault(kvstore.NewMemory(10), mustKeys(t, "fp"), kvstore.WithVaultClock(c.Now))

		require.NoError(t, v.Put(ctx, "k", 1, 0))
		c.Advance(365 * 24 * time.Hour)

		var n int
		_, err := v.Fetch(ctx, "k", &n, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("entries are device scoped", func(t *testing.T) {
		t.Parallel()
		backend := kvstore.NewMemory(10)
		mine := kvstore.NewVault(backend, mustKeys(t, "device-a"))
		theirs := kvstore.NewVault(backend, mustKeys(t, "device-b"))

		require.NoError(t, mine.Put(ctx, "spin", payload{Code: "A"}, 0))

		var out payload
		_, err := theirs.Fetch(ctx, "spin", &out, 0)
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
		assert.Equal(t, 1, backend.Len())
	})

	t.Run("unreadable entry is removed", func(t *testing.T) {
		t.Parallel()
		keys := mustKeys(t, "fp")
		backend := kvstore.NewMemory(10)
		require.NoError(t, backend.Set(ctx, keys.StorageName("spin"), []byte("garbage"), 0))

		var out payload
		_, err := kvstore.NewVault(backend, keys).Fetch(ctx, "spin", &out, 0)
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
		assert.Zero(t, backend.Len())
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		v := kvstore.NewVault(kvstore.NewMemory(10), mustKeys(t, "fp"))
		require.NoError(t, v.Put(ctx, "k", 1, 0))
		require.NoError(t, v.Remove(ctx, "k"))

		var n int
		_, err := v.Fetch(ctx, "k", &n, 0)
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		t.Parallel()
		v := kvstore.NewVault(kvstore.NewMemory(10), mustKeys(t, "fp"))
		err := v.Put(ctx, "bad", make(chan int), 0)
		assert.ErrorIs(t, err, kvstore.ErrEncodeValue)
	})
}

var (
	_ kvstore.Backend = (*kvstore.Memory)(nil)
	_ kvstore.Backend = (*kvstore.Redis)(nil)
)
