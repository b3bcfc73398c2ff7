package state

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rohitp80/CampusVibe-sub000/internal/models"
)

// memCache is an in-memory Cache for store tests. Values go through
// JSON the same way the sqlite-backed store serializes them.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	writes  int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (c *memCache) ReadJSON(key string, v interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), v)
}

func (c *memCache) WriteJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = string(raw)
	c.writes++
	return nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func newTestStore(t *testing.T, username string) (*Store, *memCache) {
	t.Helper()

	cache := newMemCache()
	store := NewStore(cache)
	if username != "" {
		store.Login(models.User{ID: "u-" + username, Username: username, DisplayName: username})
	}
	return store, cache
}
