package favorites

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/heritage-map/backend/internal/models"
	"github.com/heritage-map/backend/internal/storage"
)

// Store keeps the user's favorited dataset items under the
// "favorites" KV key. Removing a favorite never claws back the
// points the original toggle-on earned.
type Store struct {
	mu sync.Mutex
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// List returns all favorites, empty when none are stored.
func (s *Store) List() []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Toggle flips the favorite state of (city, item) and reports whether
// it is now favorited.
func (s *Store) Toggle(city, item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := city + "-" + item
	favs := s.load()
	for i, f := range favs {
		if f.Key == key {
			favs = append(favs[:i], favs[i+1:]...)
			s.save(favs)
			return false
		}
	}
	favs = append(favs, models.Favorite{Key: key, City: city, Item: item})
	s.save(favs)
	return true
}

// Count satisfies the achievement engine's favorites counter.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load())
}

func (s *Store) load() []models.Favorite {
	raw, ok := s.kv.Get(storage.KeyFavorites)
	if !ok {
		return []models.Favorite{}
	}
	var favs []models.Favorite
	if err := json.Unmarshal(raw, &favs); err != nil {
		log.Printf("[favorites] corrupt record, resetting: %v", err)
		return []models.Favorite{}
	}
	if favs == nil {
		favs = []models.Favorite{}
	}
	return favs
}

func (s *Store) save(favs []models.Favorite) {
	raw, err := json.Marshal(favs)
	if err != nil {
		log.Printf("[favorites] marshal failed: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyFavorites, raw); err != nil {
		log.Printf("[favorites] save failed: %v", err)
	}
}
