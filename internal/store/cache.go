package store

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

// Backend is what Cached wraps. *Dynamo satisfies it.
type Backend interface {
	Get(ctx context.Context, project, page string) (record.Record, bool, error)
	Scan(ctx context.Context, project string) ([]record.Record, error)
}

// CacheTTLFromEnv reads CONFIG_CACHE_TTL_SECONDS. Unset, invalid or
// non-positive values disable caching.
func CacheTTLFromEnv() time.Duration {
	v := strings.TrimSpace(os.Getenv("CONFIG_CACHE_TTL_SECONDS"))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

type scanEntry struct {
	records []record.Record
	expires time.Time
}

// Cached memoizes Scan results per project filter for ttl, so a warm Lambda
// does not rescan the table on every listing request. Get always goes to
// the backend. Errors are never cached.
type Cached struct {
	backend Backend
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	scans map[string]scanEntry
}

func NewCached(backend Backend, ttl time.Duration, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{
		backend: backend,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		scans:   map[string]scanEntry{},
	}
}

func (c *Cached) Get(ctx context.Context, project, page string) (record.Record, bool, error) {
	return c.backend.Get(ctx, project, page)
}

func (c *Cached) Scan(ctx context.Context, project string) ([]record.Record, error) {
	if c.ttl <= 0 {
		return c.backend.Scan(ctx, project)
	}

	c.mu.Lock()
	e, ok := c.scans[project]
	c.mu.Unlock()
	if ok && c.now().Before(e.expires) {
		c.log.Debug("scan cache hit", zap.String("project", project), zap.Int("items", len(e.records)))
		return append([]record.Record(nil), e.records...), nil
	}

	recs, err := c.backend.Scan(ctx, project)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.scans[project] = scanEntry{records: recs, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return append([]record.Record(nil), recs...), nil
}
