package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/heritage-map/backend/internal/models"
	"github.com/heritage-map/backend/internal/storage"
)

// cacheVersion gates the KV cache: bumping it invalidates every
// previously stored dataset snapshot.
const cacheVersion = "2.0"

const cacheTTL = 24 * time.Hour

const retryInterval = 30 * time.Second

// Provider loads the historical-sites dataset from a local file or an
// HTTP source, caches the raw payload in the KV store for 24 hours,
// and exposes a readiness signal so dependents can wait for the first
// successful load instead of polling.
type Provider struct {
	kv     storage.KV
	path   string
	url    string
	client *http.Client
	now    func() time.Time

	mu     sync.RWMutex
	cities []models.CityRecord

	ready     chan struct{}
	readyOnce sync.Once
}

// NewProvider builds a provider reading from url when non-empty,
// otherwise from the file at path.
func NewProvider(kv storage.KV, path, url string) *Provider {
	return &Provider{
		kv:     kv,
		path:   path,
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		now:    time.Now,
		ready:  make(chan struct{}),
	}
}

// Start loads the dataset in the background, retrying until a load
// succeeds or ctx is cancelled.
func (p *Provider) Start(ctx context.Context) {
	go func() {
		for {
			err := p.Load(ctx)
			if err == nil {
				return
			}
			log.Printf("[dataset] load failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryInterval):
			}
		}
	}()
}

// Load resolves the dataset once: a fresh cache wins, then the
// source, then a stale cache as a last resort when the source is
// unreachable.
func (p *Provider) Load(ctx context.Context) error {
	if raw, fresh := p.cached(); fresh {
		if err := p.install(raw); err == nil {
			log.Printf("[dataset] loaded %d cities from cache", p.count())
			return nil
		}
		log.Printf("[dataset] discarding corrupt cache")
	}

	raw, err := p.fetch(ctx)
	if err == nil {
		if installErr := p.install(raw); installErr != nil {
			return fmt.Errorf("parse dataset: %w", installErr)
		}
		p.storeCache(raw)
		log.Printf("[dataset] loaded %d cities from source", p.count())
		return nil
	}

	// Source unreachable. A stale cache is better than nothing.
	if raw, _ := p.cached(); raw != nil {
		if installErr := p.install(raw); installErr == nil {
			log.Printf("[dataset] source unreachable, serving stale cache (%d cities): %v", p.count(), err)
			return nil
		}
	}
	return fmt.Errorf("fetch dataset: %w", err)
}

// cached returns the cached payload and whether it is current: same
// cache version and written within the freshness window.
func (p *Provider) cached() (raw []byte, fresh bool) {
	raw, ok := p.kv.Get(storage.KeyDataCache)
	if !ok {
		return nil, false
	}
	ver, _ := p.kv.Get(storage.KeyDataCacheVersion)
	if string(ver) != cacheVersion {
		return nil, false
	}
	stamp, ok := p.kv.Get(storage.KeyDataCacheTime)
	if !ok {
		return raw, false
	}
	millis, err := strconv.ParseInt(string(stamp), 10, 64)
	if err != nil {
		return raw, false
	}
	age := p.now().Sub(time.UnixMilli(millis))
	return raw, age >= 0 && age < cacheTTL
}

func (p *Provider) storeCache(raw []byte) {
	if err := p.kv.Set(storage.KeyDataCache, raw); err != nil {
		log.Printf("[dataset] cache write failed: %v", err)
		return
	}
	stamp := strconv.FormatInt(p.now().UnixMilli(), 10)
	if err := p.kv.Set(storage.KeyDataCacheTime, []byte(stamp)); err != nil {
		log.Printf("[dataset] cache stamp write failed: %v", err)
	}
	if err := p.kv.Set(storage.KeyDataCacheVersion, []byte(cacheVersion)); err != nil {
		log.Printf("[dataset] cache version write failed: %v", err)
	}
}

func (p *Provider) fetch(ctx context.Context) ([]byte, error) {
	if p.url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, p.url)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(p.path)
}

// install parses raw and publishes it, closing the ready channel on
// the first success.
func (p *Provider) install(raw []byte) error {
	var cities []models.CityRecord
	if err := json.Unmarshal(raw, &cities); err != nil {
		return err
	}
	p.mu.Lock()
	p.cities = cities
	p.mu.Unlock()
	p.readyOnce.Do(func() { close(p.ready) })
	return nil
}

func (p *Provider) count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cities)
}

// Cities returns the loaded dataset, empty until the first load
// completes.
func (p *Provider) Cities() []models.CityRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cities
}

// Ready is closed after the first successful load.
func (p *Provider) Ready() <-chan struct{} {
	return p.ready
}

// WaitReady blocks until the dataset is loaded or ctx expires.
func (p *Provider) WaitReady(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dataset not ready: %w", ctx.Err())
	}
}
