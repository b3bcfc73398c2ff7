package state

import (
	"github.com/google/uuid"
	"github.com/rohitp80/CampusVibe-sub000/internal/localstore"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/pkg/errors"
)

// AcceptResult records what an accept transition changed, so a failed
// remote call can be reverted precisely. FriendName is the other
// party regardless of which direction the request travelled.
type AcceptResult struct {
	Request     models.FriendRequest
	FriendName  string
	FriendAdded bool
}

// SendFriendRequest appends a pending request from the current user
// to target. One pending request per directed pair: an identical
// outstanding from->to record makes this a no-op error.
func (s *Store) SendFriendRequest(target string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUser == nil {
		return models.FriendRequest{}, errors.New(errors.ErrCodeNotAuthenticated, "no active session")
	}

	me := s.state.CurrentUser.Username
	if target == me {
		return models.FriendRequest{}, errors.New(errors.ErrCodeValidation, "cannot send a friend request to yourself")
	}

	for _, r := range s.state.FriendRequests {
		if r.From == me && r.To == target && r.IsPending() {
			return models.FriendRequest{}, errors.New(errors.ErrCodeAlreadyExists, "friend request already pending")
		}
	}

	req := models.FriendRequest{
		ID:        uuid.NewString(),
		From:      me,
		To:        target,
		Status:    models.FriendRequestStatusPending,
		CreatedAt: s.clock(),
	}

	s.state.FriendRequests = append(s.state.FriendRequests, req)
	s.persist(localstore.KeyFriendRequests, s.state.FriendRequests)
	return req, nil
}

// CancelFriendRequest removes the one pending request where the
// current user is the sender and target the receiver. Every other
// record, including an incoming request from target, is untouched.
// No-op when nothing matches.
func (s *Store) CancelFriendRequest(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUser == nil {
		return
	}
	me := s.state.CurrentUser.Username

	kept := s.state.FriendRequests[:0]
	removed := false
	for _, r := range s.state.FriendRequests {
		if !removed && r.From == me && r.To == target && r.IsPending() {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return
	}

	s.state.FriendRequests = kept
	s.persist(localstore.KeyFriendRequests, s.state.FriendRequests)
}

// AcceptFriendRequest removes the pending request with the given id
// and adds the other party to the friends list unless already there.
// The second return is false when the id is not in the pending set,
// which makes repeated accepts harmless.
func (s *Store) AcceptFriendRequest(id string) (AcceptResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.removePendingLocked(id)
	if !ok {
		return AcceptResult{}, false
	}

	friendName := req.From
	if s.state.CurrentUser != nil && req.From == s.state.CurrentUser.Username {
		friendName = req.To
	}

	added := false
	if !s.hasFriendLocked(friendName) {
		s.state.Friends = append(s.state.Friends, models.Friend{
			Username: friendName,
			Since:    s.clock(),
		})
		added = true
		s.persist(localstore.KeyFriends, s.state.Friends)
	}

	s.persist(localstore.KeyFriendRequests, s.state.FriendRequests)
	return AcceptResult{Request: req, FriendName: friendName, FriendAdded: added}, true
}

// RejectFriendRequest removes the pending request with the given id.
// No friendship is created. Returns false when the id is absent.
func (s *Store) RejectFriendRequest(id string) (models.FriendRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.removePendingLocked(id)
	if !ok {
		return models.FriendRequest{}, false
	}

	s.persist(localstore.KeyFriendRequests, s.state.FriendRequests)
	return req, true
}

// ReinstatePending puts a previously removed request back in the
// pending set. Revert primitive for failed remote accept/reject.
func (s *Store) ReinstatePending(req models.FriendRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.state.FriendRequests {
		if r.ID == req.ID {
			return
		}
	}

	req.Status = models.FriendRequestStatusPending
	s.state.FriendRequests = append(s.state.FriendRequests, req)
	s.persist(localstore.KeyFriendRequests, s.state.FriendRequests)
}

// RevertAccept undoes an AcceptFriendRequest transition: the request
// returns to the pending set and, when the accept created the
// friendship, the friend entry is dropped again.
func (s *Store) RevertAccept(res AcceptResult) {
	s.ReinstatePending(res.Request)
	if !res.FriendAdded {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Friends[:0]
	for _, f := range s.state.Friends {
		if f.Username == res.FriendName {
			continue
		}
		kept = append(kept, f)
	}
	s.state.Friends = kept
	s.persist(localstore.KeyFriends, s.state.Friends)
}

// RefreshFriendData re-reads the pending-request and friends
// collections from the local store, picking up writes from other
// processes sharing the cache file. Idempotent.
func (s *Store) RefreshFriendData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []models.FriendRequest
	if ok, err := s.cache.ReadJSON(localstore.KeyFriendRequests, &requests); err != nil {
		return err
	} else if ok {
		s.state.FriendRequests = requests
	}

	var friends []models.Friend
	if ok, err := s.cache.ReadJSON(localstore.KeyFriends, &friends); err != nil {
		return err
	} else if ok {
		s.state.Friends = friends
	}

	return nil
}

// ReplaceFriendRequests installs the authoritative pending set from
// the remote system of record and stamps the staleness token.
func (s *Store) ReplaceFriendRequests(requests []models.FriendRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.FriendRequests = requests
	s.syncedAt[localstore.KeyFriendRequests] = s.clock()
	s.persist(localstore.KeyFriendRequests, s.state.FriendRequests)
}

// ReplaceFriends installs the authoritative friends list and stamps
// the staleness token.
func (s *Store) ReplaceFriends(friends []models.Friend) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Friends = friends
	s.syncedAt[localstore.KeyFriends] = s.clock()
	s.persist(localstore.KeyFriends, s.state.Friends)
}

func (s *Store) removePendingLocked(id string) (models.FriendRequest, bool) {
	for i, r := range s.state.FriendRequests {
		if r.ID == id && r.IsPending() {
			req := r
			s.state.FriendRequests = append(s.state.FriendRequests[:i], s.state.FriendRequests[i+1:]...)
			return req, true
		}
	}
	return models.FriendRequest{}, false
}

func (s *Store) hasFriendLocked(username string) bool {
	for _, f := range s.state.Friends {
		if f.Username == username {
			return true
		}
	}
	return false
}
