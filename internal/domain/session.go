package domain

// Session is the authenticated identity of a caller.
// A nil *Session stands for an anonymous caller.
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Owner returns the owner id used to scope storage queries.
func (s *Session) Owner() string {
	if s == nil {
		return ""
	}
	return s.UserID
}
