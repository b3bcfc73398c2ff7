package models

// User is the profile shape cached locally after login. The hosted
// backend owns the record; this copy may be stale.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// ProfilePatch carries the mutable profile fields for update-profile
// calls. Nil fields are left untouched.
type ProfilePatch struct {
	DisplayName *string `json:"displayName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// Apply returns a copy of u with the patch fields applied.
func (p ProfilePatch) Apply(u User) User {
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	return u
}
