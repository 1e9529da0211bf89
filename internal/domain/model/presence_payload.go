package model

// OnlineUsersPayload carries the full snapshot of online user ids. It is
// broadcast to every connection on each presence change, matching the
// getOnlineUsers contract of the client protocol.
type OnlineUsersPayload struct {
	UserIDs []string `json:"userIds"`
}

// UserStatusPayload is exported to the message bus so the REST side can
// track last-seen without polling the registry.
type UserStatusPayload struct {
	UserID    string `json:"user_id"`
	Online    bool   `json:"online"`
	ChangedAt int64  `json:"changed_at"`
}
