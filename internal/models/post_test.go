package models

import (
	"testing"
	"time"
)

func TestPost_UnlockIfDue(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		post        Post
		now         time.Time
		wantChanged bool
		wantLocked  bool
	}{
		{
			name:        "Locked capsule past unlock date",
			post:        Post{Type: PostTypeTimeCapsule, IsLocked: true, UnlockDate: base},
			now:         base.Add(time.Hour),
			wantChanged: true,
			wantLocked:  false,
		},
		{
			name:        "Locked capsule before unlock date",
			post:        Post{Type: PostTypeTimeCapsule, IsLocked: true, UnlockDate: base},
			now:         base.Add(-time.Hour),
			wantChanged: false,
			wantLocked:  true,
		},
		{
			name:        "Already unlocked capsule",
			post:        Post{Type: PostTypeTimeCapsule, IsLocked: false, UnlockDate: base},
			now:         base.Add(time.Hour),
			wantChanged: false,
			wantLocked:  false,
		},
		{
			name:        "Non-capsule post never flips",
			post:        Post{Type: PostTypeText, IsLocked: true, UnlockDate: base},
			now:         base.Add(time.Hour),
			wantChanged: false,
			wantLocked:  true,
		},
		{
			name:        "Capsule without unlock date stays locked",
			post:        Post{Type: PostTypeTimeCapsule, IsLocked: true},
			now:         base,
			wantChanged: false,
			wantLocked:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := tt.post.UnlockIfDue(tt.now)
			if changed != tt.wantChanged {
				t.Errorf("UnlockIfDue() = %v, want %v", changed, tt.wantChanged)
			}
			if tt.post.IsLocked != tt.wantLocked {
				t.Errorf("IsLocked = %v, want %v", tt.post.IsLocked, tt.wantLocked)
			}
		})
	}
}

func TestPost_Anonymize(t *testing.T) {
	p := Post{ID: "p1", AuthorID: "u1", Username: "alice", Content: "hi"}
	p.Anonymize()

	if !p.IsAnonymous {
		t.Error("IsAnonymous = false, want true")
	}
	if p.AuthorID != "" || p.Username != "" {
		t.Errorf("identifying fields not cleared: authorId=%q username=%q", p.AuthorID, p.Username)
	}
	if p.Content != "hi" {
		t.Errorf("Content = %q, want %q", p.Content, "hi")
	}
}

func TestPost_InCommunity(t *testing.T) {
	code := &Community{ID: "c1", Name: "CodeCoffee"}

	tests := []struct {
		name      string
		post      Post
		community *Community
		want      bool
	}{
		{"Matching community", Post{Community: "CodeCoffee"}, code, true},
		{"Different community", Post{Community: "ArtCorner"}, code, false},
		{"Nil community matches all", Post{Community: "ArtCorner"}, nil, true},
		{"Post without community", Post{}, code, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.InCommunity(tt.community); got != tt.want {
				t.Errorf("InCommunity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommunity_MayPost(t *testing.T) {
	c := Community{
		Name: "CodeCoffee",
		Members: []Member{
			{Username: "alice", Role: MemberRoleAdmin},
			{Username: "bob", Role: MemberRoleMember, CanPost: true},
			{Username: "carol", Role: MemberRoleMember, CanPost: false},
		},
	}

	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"bob", true},
		{"carol", false},
		{"mallory", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			if got := c.MayPost(tt.username); got != tt.want {
				t.Errorf("MayPost(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}
