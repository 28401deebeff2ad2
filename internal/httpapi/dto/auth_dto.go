package dto

// AuthResponse acknowledges a successful register or login.
type AuthResponse struct {
	OK       bool   `json:"ok"`
	Username string `json:"username"`
}

// AckResponse acknowledges a mutation with no payload of its own.
type AckResponse struct {
	OK bool `json:"ok"`
}

// MeResponse reports the identity attached to the current session.
// It marshals to {} for anonymous callers.
type MeResponse struct {
	Username string `json:"username,omitempty"`
}
