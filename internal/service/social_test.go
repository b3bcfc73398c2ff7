package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rohitp80/CampusVibe-sub000/internal/api"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/internal/state"
)

// memCache mirrors the state package's test cache; services exercise
// the store end to end.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
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
	return nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// fakeRemote answers every façade call from canned results.
type fakeRemote struct {
	sendFriendRequestFunc func(string) api.Result
	acceptRequestFunc     func(string) api.Result
	rejectRequestFunc     func(string) api.Result
	updateProfileFunc     func(models.ProfilePatch) api.Result
	createPostFunc        func(models.Post) api.Result
	likePostFunc          func(string) api.Result
	fetchPostsFunc        func(int, int) api.Result
}

func ok(data string) api.Result {
	return api.Result{Success: true, Data: json.RawMessage(data)}
}

func fail(msg string) api.Result {
	return api.Result{Success: false, Error: msg}
}

func (f *fakeRemote) SendFriendRequest(_ context.Context, target string) api.Result {
	if f.sendFriendRequestFunc != nil {
		return f.sendFriendRequestFunc(target)
	}
	return ok(`{}`)
}

func (f *fakeRemote) AcceptRequest(_ context.Context, id string) api.Result {
	if f.acceptRequestFunc != nil {
		return f.acceptRequestFunc(id)
	}
	return ok(`{}`)
}

func (f *fakeRemote) RejectRequest(_ context.Context, id string) api.Result {
	if f.rejectRequestFunc != nil {
		return f.rejectRequestFunc(id)
	}
	return ok(`{}`)
}

func (f *fakeRemote) UpdateProfile(_ context.Context, patch models.ProfilePatch) api.Result {
	if f.updateProfileFunc != nil {
		return f.updateProfileFunc(patch)
	}
	return ok(`{}`)
}

func (f *fakeRemote) CreatePost(_ context.Context, post models.Post) api.Result {
	if f.createPostFunc != nil {
		return f.createPostFunc(post)
	}
	return ok(`{}`)
}

func (f *fakeRemote) LikePost(_ context.Context, id string) api.Result {
	if f.likePostFunc != nil {
		return f.likePostFunc(id)
	}
	return ok(`{}`)
}

func (f *fakeRemote) FetchPosts(_ context.Context, page, limit int) api.Result {
	if f.fetchPostsFunc != nil {
		return f.fetchPostsFunc(page, limit)
	}
	return ok(`[]`)
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func newSocialFixture(t *testing.T, username string, remote *fakeRemote) (*SocialService, *state.Store, *recordingNotifier) {
	t.Helper()

	store := state.NewStore(newMemCache())
	if username != "" {
		store.Login(models.User{ID: "u-" + username, Username: username})
	}
	notifier := &recordingNotifier{}
	return NewSocialService(store, remote, notifier), store, notifier
}

func TestSocialService_SendFriendRequest(t *testing.T) {
	svc, store, notifier := newSocialFixture(t, "alice", &fakeRemote{})

	if err := svc.SendFriendRequest(context.Background(), "bob"); err != nil {
		t.Fatalf("SendFriendRequest() error = %v", err)
	}

	snap := store.Snapshot()
	if len(snap.FriendRequests) != 1 || snap.FriendRequests[0].To != "bob" {
		t.Errorf("pending = %+v, want one request to bob", snap.FriendRequests)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("success notifications = %v, want 1", notifier.successes)
	}
}

func TestSocialService_SendFriendRequest_RevertsOnRemoteFailure(t *testing.T) {
	remote := &fakeRemote{
		sendFriendRequestFunc: func(string) api.Result { return fail("user not found") },
	}
	svc, store, notifier := newSocialFixture(t, "alice", remote)

	if err := svc.SendFriendRequest(context.Background(), "ghost"); err == nil {
		t.Fatal("SendFriendRequest() expected error, got nil")
	}

	if got := len(store.Snapshot().FriendRequests); got != 0 {
		t.Errorf("pending after revert = %d, want 0", got)
	}
	if len(notifier.errors) != 1 {
		t.Errorf("error notifications = %v, want 1", notifier.errors)
	}
}

func TestSocialService_AcceptFriendRequest_RevertsOnRemoteFailure(t *testing.T) {
	remote := &fakeRemote{
		acceptRequestFunc: func(string) api.Result { return fail("request expired") },
	}
	svc, store, _ := newSocialFixture(t, "bob", remote)
	store.ReplaceFriendRequests([]models.FriendRequest{
		{ID: "R1", From: "alice", To: "bob", Status: models.FriendRequestStatusPending},
	})

	if err := svc.AcceptFriendRequest(context.Background(), "R1"); err == nil {
		t.Fatal("AcceptFriendRequest() expected error, got nil")
	}

	snap := store.Snapshot()
	if len(snap.FriendRequests) != 1 || snap.FriendRequests[0].ID != "R1" {
		t.Errorf("pending = %+v, want R1 reinstated", snap.FriendRequests)
	}
	if len(snap.Friends) != 0 {
		t.Errorf("friends = %+v, want empty after revert", snap.Friends)
	}
}

func TestSocialService_AcceptFriendRequest(t *testing.T) {
	svc, store, notifier := newSocialFixture(t, "bob", &fakeRemote{})
	store.ReplaceFriendRequests([]models.FriendRequest{
		{ID: "R1", From: "alice", To: "bob", Status: models.FriendRequestStatusPending},
	})

	if err := svc.AcceptFriendRequest(context.Background(), "R1"); err != nil {
		t.Fatalf("AcceptFriendRequest() error = %v", err)
	}

	// Second accept: id already resolved, nothing to do remotely
	if err := svc.AcceptFriendRequest(context.Background(), "R1"); err == nil {
		t.Error("repeated AcceptFriendRequest() expected not-found error")
	}

	snap := store.Snapshot()
	if len(snap.Friends) != 1 || snap.Friends[0].Username != "alice" {
		t.Errorf("friends = %+v, want exactly alice", snap.Friends)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("success notifications = %v, want 1", notifier.successes)
	}
}

func TestSocialService_RejectFriendRequest_RevertsOnRemoteFailure(t *testing.T) {
	remote := &fakeRemote{
		rejectRequestFunc: func(string) api.Result { return fail("boom") },
	}
	svc, store, _ := newSocialFixture(t, "bob", remote)
	store.ReplaceFriendRequests([]models.FriendRequest{
		{ID: "R1", From: "alice", To: "bob", Status: models.FriendRequestStatusPending},
	})

	if err := svc.RejectFriendRequest(context.Background(), "R1"); err == nil {
		t.Fatal("RejectFriendRequest() expected error, got nil")
	}

	if got := len(store.Snapshot().FriendRequests); got != 1 {
		t.Errorf("pending after revert = %d, want 1", got)
	}
}

func TestSocialService_UpdateProfile_RevertsOnRemoteFailure(t *testing.T) {
	remote := &fakeRemote{
		updateProfileFunc: func(models.ProfilePatch) api.Result { return fail("display name taken") },
	}
	svc, store, _ := newSocialFixture(t, "alice", remote)

	name := "Alice the Great"
	err := svc.UpdateProfile(context.Background(), models.ProfilePatch{DisplayName: &name})
	if err == nil {
		t.Fatal("UpdateProfile() expected error, got nil")
	}

	snap := store.Snapshot()
	if snap.CurrentUser.DisplayName == name {
		t.Error("optimistic display name survived failed remote update")
	}
}

// When the current user was the sender of the accepted request, the
// confirmation must name the other party, not the user themselves.
func TestSocialService_AcceptFriendRequest_NamesOtherParty(t *testing.T) {
	svc, store, notifier := newSocialFixture(t, "bob", &fakeRemote{})
	store.ReplaceFriendRequests([]models.FriendRequest{
		{ID: "R2", From: "bob", To: "carol", Status: models.FriendRequestStatusPending},
	})

	if err := svc.AcceptFriendRequest(context.Background(), "R2"); err != nil {
		t.Fatalf("AcceptFriendRequest() error = %v", err)
	}

	if len(notifier.successes) != 1 {
		t.Fatalf("successes = %+v, want exactly one", notifier.successes)
	}
	if !strings.Contains(notifier.successes[0], "carol") {
		t.Errorf("notification = %q, want it to name carol", notifier.successes[0])
	}

	snap := store.Snapshot()
	if len(snap.Friends) != 1 || snap.Friends[0].Username != "carol" {
		t.Errorf("friends = %+v, want exactly carol", snap.Friends)
	}
}
