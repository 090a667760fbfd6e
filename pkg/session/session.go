package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated identity bound to one device. User is opaque to
// this package: whatever the login flow stored is returned verbatim.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	User      json.RawMessage `json:"user"`
	LoginTime time.Time       `json:"loginTime"`
	DeviceID  string          `json:"deviceId"`
}

// DecodeUser unmarshals the stored user payload into dst.
func (s *Session) DecodeUser(dst any) error {
	return json.Unmarshal(s.User, dst)
}

// IsAuthenticated reports whether s represents a logged-in user.
func (s *Session) IsAuthenticated() bool {
	return s != nil && len(s.User) > 0
}
