package state

import (
	"time"

	"github.com/rohitp80/CampusVibe-sub000/internal/localstore"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

// PostPatch carries the mutable post fields for UpdatePost. Nil
// fields are left untouched.
type PostPatch struct {
	Content     *string
	ImageURL    *string
	CodeSnippet *string
	Likes       *int
	Comments    *int
	Liked       *bool
	IsLocked    *bool
}

func (p PostPatch) apply(post *models.Post) {
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.ImageURL != nil {
		post.ImageURL = *p.ImageURL
	}
	if p.CodeSnippet != nil {
		post.CodeSnippet = *p.CodeSnippet
	}
	if p.Likes != nil {
		post.Likes = *p.Likes
	}
	if p.Comments != nil {
		post.Comments = *p.Comments
	}
	if p.Liked != nil {
		post.Liked = *p.Liked
	}
	if p.IsLocked != nil {
		post.IsLocked = *p.IsLocked
	}
}

// AddPost prepends a post to the feed and refreshes the filtered view.
func (s *Store) AddPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Posts = append([]models.Post{post}, s.state.Posts...)
	s.finishPostMutationLocked()
}

// UpdatePost applies a patch to the post with the given id in both
// the full and filtered collections. Unknown ids are a silent no-op.
func (s *Store) UpdatePost(id string, patch PostPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.state.Posts {
		if s.state.Posts[i].ID == id {
			patch.apply(&s.state.Posts[i])
			found = true
			break
		}
	}
	if !found {
		return
	}
	s.finishPostMutationLocked()
}

// ReplacePost swaps the post with oldID for the given post, keeping
// its feed position. Used when the server assigns the canonical id to
// an optimistic local record.
func (s *Store) ReplacePost(oldID string, post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Posts {
		if s.state.Posts[i].ID == oldID {
			s.state.Posts[i] = post
			s.finishPostMutationLocked()
			return
		}
	}
}

// RemovePost deletes the post with the given id. Unknown ids are a
// silent no-op.
func (s *Store) RemovePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Posts[:0]
	removed := false
	for _, p := range s.state.Posts {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false
	}

	s.state.Posts = kept
	s.finishPostMutationLocked()
	return true
}

// DeletePost is RemovePost under the name the delete action uses.
func (s *Store) DeletePost(id string) bool {
	return s.RemovePost(id)
}

// ToggleLike flips the liked flag and moves the like counter in the
// same transition; the filtered view stays consistent with the full
// list. Returns the new liked value, and false when the id is unknown.
func (s *Store) ToggleLike(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Posts {
		if s.state.Posts[i].ID != id {
			continue
		}

		post := &s.state.Posts[i]
		if post.Liked {
			post.Liked = false
			post.Likes--
		} else {
			post.Liked = true
			post.Likes++
		}
		liked := post.Liked

		s.finishPostMutationLocked()
		return liked, true
	}
	return false, false
}

// SavePost bookmarks a post. Saving an already-saved post is a no-op;
// the return value reports whether anything was added.
func (s *Store) SavePost(post models.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.SavedPosts {
		if p.ID == post.ID {
			return false
		}
	}

	s.state.SavedPosts = append(s.state.SavedPosts, post)
	s.persist(localstore.KeySavedPosts, s.state.SavedPosts)
	return true
}

// UnsavePost removes a bookmark. Absent ids are a silent no-op.
func (s *Store) UnsavePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.SavedPosts[:0]
	removed := false
	for _, p := range s.state.SavedPosts {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false
	}

	s.state.SavedPosts = kept
	s.persist(localstore.KeySavedPosts, s.state.SavedPosts)
	return true
}

// SelectCommunity recomputes the filtered view for the given
// community, or restores the full list when nil. The selection is
// persisted so a reload lands on the same filter.
func (s *Store) SelectCommunity(community *models.Community) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SelectedCommunity = community
	s.recomputeFilteredLocked()

	if community == nil {
		if err := s.cache.Delete(localstore.KeySelectedCommunity); err != nil {
			logger.Error("Failed to clear community selection", "error", err)
		}
		return
	}
	s.persist(localstore.KeySelectedCommunity, *community)
}

// ReplacePosts installs the authoritative feed page from the remote
// system of record and stamps the staleness token.
func (s *Store) ReplacePosts(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Posts = posts
	s.syncedAt[localstore.KeyPosts] = s.clock()
	s.finishPostMutationLocked()
}

// UnlockDuePosts flips the lock flag on every time-capsule post whose
// unlock date has passed, in the feed and in the bookmarks. Returns
// the number of posts unlocked.
func (s *Store) UnlockDuePosts(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlocked := 0
	for i := range s.state.Posts {
		if s.state.Posts[i].UnlockIfDue(now) {
			unlocked++
		}
	}
	if unlocked > 0 {
		s.finishPostMutationLocked()
	}

	savedUnlocked := 0
	for i := range s.state.SavedPosts {
		if s.state.SavedPosts[i].UnlockIfDue(now) {
			savedUnlocked++
		}
	}
	if savedUnlocked > 0 {
		s.persist(localstore.KeySavedPosts, s.state.SavedPosts)
	}

	return unlocked + savedUnlocked
}

// finishPostMutationLocked rebuilds the filtered view from the full
// list and writes the feed through. Called at the tail of every post
// transition so the two views can never drift.
func (s *Store) finishPostMutationLocked() {
	s.recomputeFilteredLocked()
	s.persist(localstore.KeyPosts, s.state.Posts)
}

func (s *Store) recomputeFilteredLocked() {
	filtered := make([]models.Post, 0, len(s.state.Posts))
	for _, p := range s.state.Posts {
		if p.InCommunity(s.state.SelectedCommunity) {
			filtered = append(filtered, p)
		}
	}
	s.state.FilteredPosts = filtered
}
