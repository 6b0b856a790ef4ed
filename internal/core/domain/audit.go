package domain

import "time"

// AuthEventKind classifies entries in the auth audit trail.
type AuthEventKind string

const (
	AuthEventLogin       AuthEventKind = "login"
	AuthEventDenial      AuthEventKind = "denial"
	AuthEventTermination AuthEventKind = "termination"
)

// AuthEvent is one entry in the audit trail: a guard denial, a login
// outcome, or a session termination (logout, local expiry, backend 401).
type AuthEvent struct {
	SessionID string        `json:"session_id,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Kind      AuthEventKind `json:"kind"`
	Reason    string        `json:"reason,omitempty"`
	Path      string        `json:"path,omitempty"`
	At        time.Time     `json:"at"`
}
