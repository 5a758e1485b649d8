package domain

// Session is the decoded snapshot carried in the signed session token.
// The auth gate routes on this snapshot alone; it never re-reads the
// user row, so role/active changes propagate only on re-issue.
type Session struct {
	UserID      UserID
	Email       string
	FullName    string
	Role        Role
	IsActive    bool
	RequiresOTP bool
}

// Verified reports whether the session may reach protected surfaces.
func (s *Session) Verified() bool {
	return s != nil && s.IsActive && !s.RequiresOTP
}
