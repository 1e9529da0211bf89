package model

import "time"

// HubStats is the registry snapshot served on /stats and rendered by the
// terminal dashboard.
type HubStats struct {
	OnlineUsers int           `json:"online_users"`
	Delivered   uint64        `json:"delivered"`
	Dropped     uint64        `json:"dropped"`
	Uptime      time.Duration `json:"uptime"`
}
