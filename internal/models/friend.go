package models

import "time"

// FriendRequest status constants
const (
	FriendRequestStatusPending  = "pending"
	FriendRequestStatusAccepted = "accepted"
	FriendRequestStatusRejected = "rejected"
)

// FriendRequest is a directed request From -> To. Only pending
// requests live in the client cache; accepted/rejected ones are
// dropped from the pending set when resolved.
type FriendRequest struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsPending reports whether the request is still unresolved.
func (r FriendRequest) IsPending() bool {
	return r.Status == FriendRequestStatusPending
}

// Friend is one side of an accepted friendship as seen by the
// current user. Friendships are symmetric; the server keeps the pair,
// the client keeps the other party.
type Friend struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	Since       time.Time `json:"since"`
}
