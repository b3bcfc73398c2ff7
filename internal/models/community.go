package models

// Member role constants
const (
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

type Member struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	CanPost  bool   `json:"can_post"`
}

type Community struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	MemberCount int      `json:"memberCount"`
	Members     []Member `json:"members,omitempty"`
}

// MayPost reports whether the named member can publish into the
// community. Admins always can; plain members need the can_post flag.
func (c Community) MayPost(username string) bool {
	for _, m := range c.Members {
		if m.Username != username {
			continue
		}
		return m.Role == MemberRoleAdmin || m.CanPost
	}
	return false
}
