// Package localstore is the durable client-side cache: a key/value
// table in an embedded sqlite file, values JSON-serialized. Keys are
// independent; there is no transactional grouping across keys.
package localstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store keys used by the core. Each is read and written on its own.
const (
	KeyFriendRequests    = "campus_friend_requests"
	KeyFriends           = "campus_friends"
	KeyPosts             = "campus_posts"
	KeySavedPosts        = "campus_saved_posts"
	KeySelectedCommunity = "campus_selected_community"
	KeyCurrentPage       = "campus_current_page"
	KeyCurrentUser       = "campus_current_user"
	KeySessionToken      = "campus_session_token"
)

type cacheEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (cacheEntry) TableName() string {
	return "cache_entries"
}

type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the cache file at path and migrates
// the entries table.
func Open(path, appEnv string) (*Store, error) {
	var logLevel gormlogger.LogLevel
	if appEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, fmt.Errorf("local store migration failed: %w", err)
	}

	logger.Debug("Local store opened", "path", path)
	return &Store{db: db}, nil
}

// Get returns the raw value for key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var entry cacheEntry
	err := s.db.First(&entry, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("local store read %q: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set writes the raw value for key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	entry := cacheEntry{Key: key, Value: value}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("local store write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&cacheEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("local store delete %q: %w", key, err)
	}
	return nil
}

// ReadJSON unmarshals the value stored under key into v. Returns
// false without touching v when the key is absent.
func (s *Store) ReadJSON(key string, v interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("local store decode %q: %w", key, err)
	}
	return true, nil
}

// WriteJSON marshals v and stores it under key.
func (s *Store) WriteJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("local store encode %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
