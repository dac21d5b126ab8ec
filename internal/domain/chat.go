package domain

import "time"

// ChatTurn is one user/bot exchange. Turns are append-only.
type ChatTurn struct {
	User      string
	Bot       string
	CreatedAt time.Time
}
