package storage

import "testing"

func TestMemory(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Get("missing"); ok {
		t.Error("Get on empty store reported a value")
	}

	if err := m.Set(KeyUserStats, []byte(`{"totalPoints":11}`)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok := m.Get(KeyUserStats)
	if !ok || string(got) != `{"totalPoints":11}` {
		t.Errorf("Get = (%q, %v), want the stored value", got, ok)
	}

	// Overwrite replaces.
	if err := m.Set(KeyUserStats, []byte(`{"totalPoints":14}`)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got, _ := m.Get(KeyUserStats); string(got) != `{"totalPoints":14}` {
		t.Errorf("Get after overwrite = %q", got)
	}

	if err := m.Delete(KeyUserStats); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := m.Get(KeyUserStats); ok {
		t.Error("Get after Delete reported a value")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	value := []byte("original")
	if err := m.Set("key", value); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice must not change the stored value.
	value[0] = 'X'
	got, _ := m.Get("key")
	if string(got) != "original" {
		t.Errorf("stored value mutated through the caller's slice: %q", got)
	}

	// Nor should mutating a returned slice.
	got[0] = 'X'
	again, _ := m.Get("key")
	if string(again) != "original" {
		t.Errorf("stored value mutated through a returned slice: %q", again)
	}
}
