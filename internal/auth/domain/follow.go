package domain

import "time"

// Follow is a directed edge: FollowerID follows FolloweeID.
type Follow struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}
