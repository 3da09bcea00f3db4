package domain

// Session is the durable browser session: the bearer token for upstream
// calls plus the cached user. Either may be absent, and a session with a
// token but no usable user record is treated as signed out.
type Session struct {
	Token string
	User  *User
}

// Authenticated reports whether the session carries both a token and a user.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session user's role, or the empty role when signed out.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
