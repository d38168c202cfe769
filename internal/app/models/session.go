package models

import "time"

// Session is the authenticated session stored in Redis by the auth service,
// keyed by SessionID. This service only reads it.
type Session struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Principal is the caller identity carried in the request context.
type Principal struct {
	SessionID string
	UserID    string
	Role      string
	Name      string
}

func (s *Session) Principal() Principal {
	return Principal{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		Role:      s.Role,
		Name:      s.Name,
	}
}
