package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rohitp80/CampusVibe-sub000/internal/api"
	"github.com/rohitp80/CampusVibe-sub000/internal/localstore"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/internal/state"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

// FriendLister is the slice of the sync façade the poller needs.
type FriendLister interface {
	Friends(ctx context.Context) api.Result
	IncomingRequests(ctx context.Context) api.Result
}

// FriendsPoller reconciles the friends and pending-request caches.
// The local re-read runs on every call because it is free; the remote
// calls cost a round trip each, so they are gated by a much coarser
// cache window. The poller is the only component that decides when
// remote truth replaces the cache.
type FriendsPoller struct {
	store  *state.Store
	remote FriendLister
	window time.Duration
	now    func() time.Time
}

func NewFriendsPoller(store *state.Store, remote FriendLister, window time.Duration) *FriendsPoller {
	return &FriendsPoller{
		store:  store,
		remote: remote,
		window: window,
		now:    time.Now,
	}
}

// Refresh is the single refresh entry point: local re-read always,
// remote re-pull only when the cache window has lapsed. The two
// collections are stamped and gated independently, so a failed
// requests pull is retried on the next call even while the friends
// stamp is still fresh. Idempotent.
func (p *FriendsPoller) Refresh(ctx context.Context) {
	if err := p.store.RefreshFriendData(); err != nil {
		logger.Error("Local friend refresh failed", "error", err)
	}

	if p.store.CurrentUsername() == "" {
		return
	}

	now := p.now()
	if now.Sub(p.store.SyncedAt(localstore.KeyFriends)) >= p.window {
		p.pullFriends(ctx)
	}
	if now.Sub(p.store.SyncedAt(localstore.KeyFriendRequests)) >= p.window {
		p.pullRequests(ctx)
	}
}

func (p *FriendsPoller) pullFriends(ctx context.Context) {
	res := p.remote.Friends(ctx)
	if !res.Success {
		logger.Debug("Friends poll skipped", "error", res.Error)
		return
	}

	var friends []models.Friend
	if err := json.Unmarshal(res.Data, &friends); err != nil {
		logger.Error("Malformed friends payload", "error", err)
		return
	}
	p.store.ReplaceFriends(friends)
}

func (p *FriendsPoller) pullRequests(ctx context.Context) {
	res := p.remote.IncomingRequests(ctx)
	if !res.Success {
		logger.Debug("Incoming-requests poll skipped", "error", res.Error)
		return
	}

	var incoming []models.FriendRequest
	if err := json.Unmarshal(res.Data, &incoming); err != nil {
		logger.Error("Malformed requests payload", "error", err)
		return
	}

	p.store.ReplaceFriendRequests(p.mergeOutgoing(incoming))
}

// mergeOutgoing combines the server's incoming pending requests with
// the locally tracked outgoing ones. The companion API only lists
// requests addressed to the caller, so optimistic outgoing records
// must survive the replacement; ids already present in the server
// list are deduplicated. An outgoing record whose target already sits
// in the friends list was accepted remotely and is dropped rather
// than carried forever.
func (p *FriendsPoller) mergeOutgoing(incoming []models.FriendRequest) []models.FriendRequest {
	me := p.store.CurrentUsername()
	seen := make(map[string]bool, len(incoming))
	for _, r := range incoming {
		seen[r.ID] = true
	}

	snap := p.store.Snapshot()
	friends := make(map[string]bool, len(snap.Friends))
	for _, f := range snap.Friends {
		friends[f.Username] = true
	}

	merged := incoming
	for _, r := range snap.FriendRequests {
		if r.From == me && r.IsPending() && !seen[r.ID] && !friends[r.To] {
			merged = append(merged, r)
		}
	}
	return merged
}
