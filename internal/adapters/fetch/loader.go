// Package fetch implements the HTTP shim loader.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"github.com/WebReflection/header-snippets/internal/core/ports"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// maxShimSize caps a fallback payload at 4 MiB.
const maxShimSize = 4 << 20

// Loader implements ports.Loader over HTTP. Concurrent loads of the same
// resource are collapsed through singleflight, and identical payloads
// (keyed by xxhash of the body) are decoded once and reused.
type Loader struct {
	client *http.Client
	logger ports.Logger
	group  singleflight.Group

	mu    sync.RWMutex
	cache map[uint64]domain.Shim
}

// NewLoader creates a Loader with a default HTTP client.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
		cache:  make(map[uint64]domain.Shim),
	}
}

// payload is the wire format of a fallback resource.
type payload struct {
	Capability string `json:"capability"`
	Value      any    `json:"value"`
}

// Load fetches and decodes the fallback implementation at resource.
func (l *Loader) Load(ctx context.Context, resource domain.InternedString) (domain.Shim, error) {
	url := resource.String()
	v, err, _ := l.group.Do(url, func() (any, error) {
		return l.fetch(ctx, url)
	})
	if err != nil {
		return domain.Shim{}, err
	}
	return v.(domain.Shim), nil
}

func (l *Loader) fetch(ctx context.Context, url string) (domain.Shim, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Shim{}, zerr.With(zerr.Wrap(err, "invalid resource url"), "url", url)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Shim{}, zerr.With(zerr.Wrap(err, "failed to fetch resource"), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.Shim{}, zerr.With(zerr.New(fmt.Sprintf("unexpected status %d", resp.StatusCode)), "url", url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShimSize))
	if err != nil {
		return domain.Shim{}, zerr.With(zerr.Wrap(err, "failed to read resource body"), "url", url)
	}

	digest := xxhash.Sum64(body)

	l.mu.RLock()
	shim, hit := l.cache[digest]
	l.mu.RUnlock()
	if hit {
		l.logger.Info(fmt.Sprintf("shim payload cache hit (digest %x)", digest))
		return shim, nil
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Shim{}, zerr.With(zerr.Wrap(err, "malformed shim payload"), "url", url)
	}

	shim = domain.Shim{
		Capability: domain.NewInternedString(p.Capability),
		Value:      p.Value,
	}

	l.mu.Lock()
	l.cache[digest] = shim
	l.mu.Unlock()

	l.logger.Info(fmt.Sprintf("fetched shim %s (digest %x)", url, digest))
	return shim, nil
}
