package commerce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const statusOK = "1"

// envelope is the response shape shared by every action. Status arrives as a
// JSON string or number depending on the endpoint.
type envelope struct {
	Status  json.RawMessage `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) status() string {
	raw := bytes.TrimSpace(e.Status)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(raw)
}

// payload returns data.data when data is an object carrying its own data
// field, otherwise data itself.
func (e envelope) payload() json.RawMessage {
	raw := bytes.TrimSpace(e.Data)
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}
	var inner struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &inner); err == nil && len(bytes.TrimSpace(inner.Data)) > 0 {
		return inner.Data
	}
	return raw
}

// decodeEnvelope checks the status and unmarshals the payload into dst.
// A nil dst only checks the status.
func decodeEnvelope(action string, body []byte, dst any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if st := env.status(); st != statusOK {
		return &APIError{Action: action, Status: st, Message: env.Message}
	}
	if dst == nil {
		return nil
	}
	payload := env.payload()
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return ErrNotFound
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}
