package model

// DisconnectedPayload is the last event pushed before the server closes a
// connection on its own initiative.
type DisconnectedPayload struct {
	Reason string `json:"reason"`
	Code   string `json:"code,omitempty"` // "SHUTDOWN", "EVICTED", "TIMEOUT"
}
