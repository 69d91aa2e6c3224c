package cnpja

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	got, err := c.Get(ctx, "12345678000190")
	require.NoError(t, err)
	assert.Nil(t, got, "empty cache should miss")

	office := sampleOffice()
	require.NoError(t, c.Put(ctx, office.TaxID, &office))

	got, err = c.Get(ctx, office.TaxID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ACME LTDA", got.Company.Name)
	assert.Equal(t, StatusActiveID, got.Status.ID)
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t, -time.Minute) // already expired on write
	ctx := context.Background()

	office := sampleOffice()
	require.NoError(t, c.Put(ctx, office.TaxID, &office))

	got, err := c.Get(ctx, office.TaxID)
	require.NoError(t, err)
	assert.Nil(t, got, "expired entry should miss")

	n, err := c.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCacheUpsert(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	office := sampleOffice()
	require.NoError(t, c.Put(ctx, office.TaxID, &office))

	office.Alias = "ACME NOVA"
	require.NoError(t, c.Put(ctx, office.TaxID, &office))

	got, err := c.Get(ctx, office.TaxID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ACME NOVA", got.Alias)
}

// fakeClient counts calls and returns a fixed office.
type fakeClient struct {
	calls  int
	office Office
	err    error
}

func (f *fakeClient) GetOffice(ctx context.Context, cnpj string) (*Office, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	o := f.office
	return &o, nil
}

func TestCachedClient(t *testing.T) {
	cache := newTestCache(t, time.Hour)
	inner := &fakeClient{office: sampleOffice()}
	c := NewCachedClient(inner, cache)
	ctx := context.Background()

	first, err := c.GetOffice(ctx, "12345678000190")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	second, err := c.GetOffice(ctx, "12345678000190")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second lookup should be served from cache")
	assert.Equal(t, first.Company.Name, second.Company.Name)
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	cache := newTestCache(t, time.Hour)
	inner := &fakeClient{err: ErrNotFound}
	c := NewCachedClient(inner, cache)
	ctx := context.Background()

	_, err := c.GetOffice(ctx, "00000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetOffice(ctx, "00000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, inner.calls, "failed lookups must not be cached")
}
