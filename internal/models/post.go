package models

import "time"

// Post type constants
const (
	PostTypeText        = "text"
	PostTypeImage       = "image"
	PostTypeCode        = "code"
	PostTypeAdvice      = "advice"
	PostTypeAnonymous   = "anonymous"
	PostTypeTimeCapsule = "time-capsule"
)

type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	Username    string    `json:"username"`
	Content     string    `json:"content"`
	Type        string    `json:"type"`
	Community   string    `json:"community,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
	CreatedAt   time.Time `json:"createdAt"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	Liked       bool      `json:"liked"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CodeSnippet string    `json:"codeSnippet,omitempty"`

	// Time-capsule fields. IsLocked flips to false once the current
	// time passes UnlockDate.
	UnlockDate time.Time `json:"unlockDate,omitempty"`
	IsLocked   bool      `json:"isLocked,omitempty"`
}

// Anonymize strips the author-identifying display fields. An
// anonymous post keeps its author id server-side only.
func (p *Post) Anonymize() {
	p.IsAnonymous = true
	p.AuthorID = ""
	p.Username = ""
}

// UnlockIfDue flips IsLocked once now has passed UnlockDate. Returns
// true when the post transitioned from locked to unlocked.
func (p *Post) UnlockIfDue(now time.Time) bool {
	if p.Type != PostTypeTimeCapsule || !p.IsLocked {
		return false
	}
	if p.UnlockDate.IsZero() || now.Before(p.UnlockDate) {
		return false
	}
	p.IsLocked = false
	return true
}

// InCommunity reports whether the post belongs to the given
// community. A nil community matches every post.
func (p Post) InCommunity(c *Community) bool {
	if c == nil {
		return true
	}
	return p.Community == c.Name
}
