package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/heritage-map/backend/internal/storage"
)

const testPayload = `[
	{"city": "西安", "province": "陕西", "items": [
		{"title": "大雁塔", "dynasty": "唐", "year": "652年"},
		{"title": "兵马俑", "dynasty": "秦", "year": "约前210年"}
	]},
	{"city": "北京", "province": "北京", "items": [
		{"title": "故宫", "dynasty": "明", "year": "1420年"}
	]}
]`

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPayload))
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	p := NewProvider(kv, "", srv.URL)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := len(p.Cities()); got != 2 {
		t.Errorf("Cities() has %d records, want 2", got)
	}
	if _, ok := kv.Get(storage.KeyDataCache); !ok {
		t.Error("payload not written to the cache")
	}
	if ver, _ := kv.Get(storage.KeyDataCacheVersion); string(ver) != "2.0" {
		t.Errorf("cache version = %q, want 2.0", ver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.WaitReady(ctx); err != nil {
		t.Errorf("WaitReady after load returned error: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history-data.json")
	if err := os.WriteFile(path, []byte(testPayload), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	p := NewProvider(storage.NewMemory(), path, "")
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := len(p.Cities()); got != 2 {
		t.Errorf("Cities() has %d records, want 2", got)
	}
}

func TestFreshCacheSkipsFetch(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(testPayload))
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	seedCache(t, kv, time.Now(), "2.0")

	p := NewProvider(kv, "", srv.URL)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if hits != 0 {
		t.Errorf("source fetched %d times despite a fresh cache", hits)
	}
}

func TestStaleVersionRefetches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(testPayload))
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	seedCache(t, kv, time.Now(), "1.0")

	p := NewProvider(kv, "", srv.URL)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if hits != 1 {
		t.Errorf("source fetched %d times, want 1 after version bump", hits)
	}
	if ver, _ := kv.Get(storage.KeyDataCacheVersion); string(ver) != "2.0" {
		t.Errorf("cache version = %q, want 2.0 after refetch", ver)
	}
}

func TestExpiredCacheRefetches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(testPayload))
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	seedCache(t, kv, time.Now().Add(-25*time.Hour), "2.0")

	p := NewProvider(kv, "", srv.URL)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if hits != 1 {
		t.Errorf("source fetched %d times, want 1 after cache expiry", hits)
	}
}

func TestStaleCacheServedWhenSourceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	seedCache(t, kv, time.Now().Add(-48*time.Hour), "2.0")

	p := NewProvider(kv, "", srv.URL)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load did not fall back to the stale cache: %v", err)
	}
	if got := len(p.Cities()); got != 2 {
		t.Errorf("Cities() has %d records, want 2 from the stale cache", got)
	}
}

func TestLoadFailsWithoutAnySource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(storage.NewMemory(), "", srv.URL)
	if err := p.Load(context.Background()); err == nil {
		t.Error("Load with no cache and a failing source did not return an error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.WaitReady(ctx); err == nil {
		t.Error("WaitReady reported ready after a failed load")
	}
}

func seedCache(t *testing.T, kv storage.KV, stamp time.Time, version string) {
	t.Helper()
	if err := kv.Set(storage.KeyDataCache, []byte(testPayload)); err != nil {
		t.Fatal(err)
	}
	millis := strconv.FormatInt(stamp.UnixMilli(), 10)
	if err := kv.Set(storage.KeyDataCacheTime, []byte(millis)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(storage.KeyDataCacheVersion, []byte(version)); err != nil {
		t.Fatal(err)
	}
}
