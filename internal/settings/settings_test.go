package settings

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heritage-map/backend/internal/storage"
)

func TestThemeDefaultsToLight(t *testing.T) {
	s := NewStore(storage.NewMemory())
	if got := s.Theme(); got != "light" {
		t.Errorf("Theme = %q, want light", got)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	s := NewStore(storage.NewMemory())
	if err := s.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if got := s.Theme(); got != "dark" {
		t.Errorf("Theme = %q, want dark", got)
	}
}

func TestThemeRejectsUnknownStoredValue(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Set(storage.KeyTheme, []byte("neon")); err != nil {
		t.Fatal(err)
	}
	s := NewStore(kv)
	if got := s.Theme(); got != "light" {
		t.Errorf("Theme with invalid stored value = %q, want light", got)
	}
}

func TestPutThemeValidation(t *testing.T) {
	h := NewHandler(NewStore(storage.NewMemory()))

	req := httptest.NewRequest("PUT", "/api/v1/settings/theme", strings.NewReader(`{"theme":"neon"}`))
	rec := httptest.NewRecorder()
	h.PutTheme(rec, req)
	if rec.Code != 400 {
		t.Errorf("PutTheme(neon) status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest("PUT", "/api/v1/settings/theme", strings.NewReader(`{"theme":"dark"}`))
	rec = httptest.NewRecorder()
	h.PutTheme(rec, req)
	if rec.Code != 200 {
		t.Errorf("PutTheme(dark) status = %d, want 200", rec.Code)
	}
}
