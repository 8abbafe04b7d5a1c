package domain

// Session is the client's belief about its current authentication state.
//
// Invariant: IsAuthenticated is true iff both Token and User are non-empty.
type Session struct {
	Token           string   `json:"token"`
	User            *Profile `json:"user"`
	IsAuthenticated bool     `json:"isAuthenticated"`
	Loading         bool     `json:"loading"`
	Error           string   `json:"error,omitempty"`
}

// Role returns the session user's role, or the empty role when signed out.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
