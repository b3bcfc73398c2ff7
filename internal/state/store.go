// Package state holds the client's view of the social graph behind a
// single mutation entry point. Every transition is synchronous,
// applies optimistically, and rewrites the backing local-store key in
// the same call, so a reload always reflects the last completed
// transition. The remote system of record is reconciled separately by
// the refresh scheduler.
package state

import (
	"sync"
	"time"

	"github.com/rohitp80/CampusVibe-sub000/internal/localstore"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

// Cache is the durable key/value store backing the state. Implemented
// by *localstore.Store.
type Cache interface {
	ReadJSON(key string, v interface{}) (bool, error)
	WriteJSON(key string, v interface{}) error
	Delete(key string) error
}

// State is an immutable snapshot of the client's social-graph view.
type State struct {
	CurrentUser       *models.User
	FriendRequests    []models.FriendRequest
	Friends           []models.Friend
	Posts             []models.Post
	FilteredPosts     []models.Post
	SavedPosts        []models.Post
	SelectedCommunity *models.Community
	CurrentPage       string
}

type Store struct {
	mu    sync.RWMutex
	state State
	cache Cache

	// last authoritative sync per collection key, stamped by the
	// Replace* reconciliation entry points only
	syncedAt map[string]time.Time

	// Now is the clock used for timestamps and staleness tokens;
	// nil means time.Now.
	Now func() time.Time
}

func NewStore(cache Cache) *Store {
	return &Store{
		cache:    cache,
		syncedAt: make(map[string]time.Time),
	}
}

func (s *Store) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Hydrate loads every collection from the local store. Called once on
// startup; missing keys leave the zero value in place.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.cache.ReadJSON(localstore.KeyFriendRequests, &s.state.FriendRequests); err != nil {
		return err
	}
	if _, err := s.cache.ReadJSON(localstore.KeyFriends, &s.state.Friends); err != nil {
		return err
	}
	if _, err := s.cache.ReadJSON(localstore.KeyPosts, &s.state.Posts); err != nil {
		return err
	}
	if _, err := s.cache.ReadJSON(localstore.KeySavedPosts, &s.state.SavedPosts); err != nil {
		return err
	}
	if _, err := s.cache.ReadJSON(localstore.KeyCurrentPage, &s.state.CurrentPage); err != nil {
		return err
	}

	var user models.User
	ok, err := s.cache.ReadJSON(localstore.KeyCurrentUser, &user)
	if err != nil {
		return err
	}
	if ok {
		s.state.CurrentUser = &user
	}

	var community models.Community
	ok, err = s.cache.ReadJSON(localstore.KeySelectedCommunity, &community)
	if err != nil {
		return err
	}
	if ok {
		s.state.SelectedCommunity = &community
	}

	s.recomputeFilteredLocked()
	return nil
}

// Snapshot returns a copy of the current state. Slices are copied so
// callers can iterate without holding the store's lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := State{
		FriendRequests: append([]models.FriendRequest(nil), s.state.FriendRequests...),
		Friends:        append([]models.Friend(nil), s.state.Friends...),
		Posts:          append([]models.Post(nil), s.state.Posts...),
		FilteredPosts:  append([]models.Post(nil), s.state.FilteredPosts...),
		SavedPosts:     append([]models.Post(nil), s.state.SavedPosts...),
		CurrentPage:    s.state.CurrentPage,
	}
	if s.state.CurrentUser != nil {
		user := *s.state.CurrentUser
		snap.CurrentUser = &user
	}
	if s.state.SelectedCommunity != nil {
		community := *s.state.SelectedCommunity
		snap.SelectedCommunity = &community
	}
	return snap
}

// CurrentUsername returns the logged-in user's handle, or "" when no
// session is active.
func (s *Store) CurrentUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return ""
	}
	return s.state.CurrentUser.Username
}

// Login caches the authenticated user's profile.
func (s *Store) Login(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentUser = &user
	s.persist(localstore.KeyCurrentUser, user)
}

// SetCurrentUser replaces the cached profile without touching the
// rest of the session. Used for profile updates.
func (s *Store) SetCurrentUser(user models.User) {
	s.Login(user)
}

// Logout clears the session-scoped collections. The public feed and
// the community selection survive a logout.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentUser = nil
	s.state.FriendRequests = nil
	s.state.Friends = nil
	s.state.SavedPosts = nil

	// Staleness tokens belong to the session that earned them; a
	// later login must not inherit them or the poller would skip the
	// first pull for the new user.
	s.syncedAt = make(map[string]time.Time)

	for _, key := range []string{
		localstore.KeyCurrentUser,
		localstore.KeyFriendRequests,
		localstore.KeyFriends,
		localstore.KeySavedPosts,
		localstore.KeySessionToken,
	} {
		if err := s.cache.Delete(key); err != nil {
			logger.Error("Failed to clear session key", "key", key, "error", err)
		}
	}
}

// SetCurrentPage persists the active page so a reload restores it.
func (s *Store) SetCurrentPage(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentPage = page
	s.persist(localstore.KeyCurrentPage, page)
}

// SyncedAt reports when the collection under key last received an
// authoritative replacement, zero if never.
func (s *Store) SyncedAt(key string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncedAt[key]
}

// persist writes a collection through to the local store. A failed
// write is logged, never surfaced: transitions themselves cannot fail
// and the refresher will reconcile on the next pass.
func (s *Store) persist(key string, v interface{}) {
	if err := s.cache.WriteJSON(key, v); err != nil {
		logger.Error("Failed to persist collection", "key", key, "error", err)
	}
}
