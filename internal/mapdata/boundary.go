package mapdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heritage-map/backend/internal/storage"
)

// DefaultBoundaryURL is the public China province boundary GeoJSON.
const DefaultBoundaryURL = "https://geo.datav.aliyun.com/areas_v3/bound/100000_full.json"

const boundaryTTL = 24 * time.Hour

// Service proxies the province boundary GeoJSON so the SPA never
// talks to the upstream host directly. The body is cached in the KV
// store for a day; a stale copy is served when the upstream is down.
type Service struct {
	kv     storage.KV
	url    string
	client *http.Client
	now    func() time.Time

	mu sync.Mutex
}

func NewService(kv storage.KV, url string) *Service {
	if url == "" {
		url = DefaultBoundaryURL
	}
	return &Service{
		kv:     kv,
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Boundary returns the GeoJSON body, from cache when fresh.
func (s *Service) Boundary(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, fresh := s.cached(); fresh {
		return raw, nil
	}

	raw, err := s.fetch(ctx)
	if err != nil {
		if raw, _ := s.cached(); raw != nil {
			log.Printf("[mapdata] upstream unreachable, serving stale boundary: %v", err)
			return raw, nil
		}
		return nil, err
	}
	s.storeCache(raw)
	return raw, nil
}

func (s *Service) cached() (raw []byte, fresh bool) {
	raw, ok := s.kv.Get(storage.KeyBoundaryCache)
	if !ok {
		return nil, false
	}
	stamp, ok := s.kv.Get(storage.KeyBoundaryTime)
	if !ok {
		return raw, false
	}
	millis, err := strconv.ParseInt(string(stamp), 10, 64)
	if err != nil {
		return raw, false
	}
	age := s.now().Sub(time.UnixMilli(millis))
	return raw, age >= 0 && age < boundaryTTL
}

func (s *Service) storeCache(raw []byte) {
	if err := s.kv.Set(storage.KeyBoundaryCache, raw); err != nil {
		log.Printf("[mapdata] cache write failed: %v", err)
		return
	}
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.kv.Set(storage.KeyBoundaryTime, []byte(stamp)); err != nil {
		log.Printf("[mapdata] cache stamp write failed: %v", err)
	}
}

func (s *Service) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.url)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Reject bodies that are not GeoJSON feature collections, the
	// upstream occasionally serves error pages with status 200.
	var probe struct {
		Features json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Features == nil {
		return nil, fmt.Errorf("malformed boundary payload from %s", s.url)
	}
	return raw, nil
}
