package cnpja

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Cache stores registry lookups in SQLite with a TTL so repeat
// consultations of the same CNPJ do not burn the open API quota.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS office_cache (
	tax_id     TEXT PRIMARY KEY,
	office     TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_office_cache_expires_at ON office_cache(expires_at);
`

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "cnpja: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "cnpja: exec %s", pragma)
		}
	}
	if _, err := db.Exec(cacheMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "cnpja: migrate cache")
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached office for a CNPJ, or nil when absent or expired.
func (c *Cache) Get(ctx context.Context, cnpj string) (*Office, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT office FROM office_cache
		 WHERE tax_id = ? AND expires_at > datetime('now')`,
		cnpj,
	)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "cnpja: get cached office")
	}

	var office Office
	if err := json.Unmarshal([]byte(raw), &office); err != nil {
		return nil, eris.Wrap(err, "cnpja: unmarshal cached office")
	}
	zap.L().Debug("cnpja cache hit", zap.String("cnpj", cnpj))
	return &office, nil
}

// Put stores an office lookup result.
func (c *Cache) Put(ctx context.Context, cnpj string, office *Office) error {
	raw, err := json.Marshal(office)
	if err != nil {
		return eris.Wrap(err, "cnpja: marshal office")
	}

	now := time.Now().UTC()
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO office_cache (tax_id, office, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (tax_id) DO UPDATE SET
			office = excluded.office,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`,
		cnpj, string(raw), now, now.Add(c.ttl),
	)
	if err != nil {
		return eris.Wrap(err, "cnpja: store cached office")
	}
	return nil
}

// DeleteExpired removes expired rows and returns how many were deleted.
func (c *Cache) DeleteExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM office_cache WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, eris.Wrap(err, "cnpja: delete expired")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// CachedClient decorates a Client with the SQLite cache. A cache miss
// or cache error falls through to the wrapped client; only successful
// lookups are stored.
type CachedClient struct {
	inner Client
	cache *Cache
}

// NewCachedClient wraps client with cache.
func NewCachedClient(client Client, cache *Cache) *CachedClient {
	return &CachedClient{inner: client, cache: cache}
}

// GetOffice implements Client.
func (c *CachedClient) GetOffice(ctx context.Context, cnpj string) (*Office, error) {
	cached, err := c.cache.Get(ctx, cnpj)
	if err != nil {
		zap.L().Warn("cnpja cache read failed", zap.String("cnpj", cnpj), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	office, err := c.inner.GetOffice(ctx, cnpj)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, cnpj, office); err != nil {
		zap.L().Warn("cnpja cache write failed", zap.String("cnpj", cnpj), zap.Error(err))
	}
	return office, nil
}
