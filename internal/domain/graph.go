package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a configured graph instance addressed by slug.
type Project struct {
	ID   uuid.UUID
	Slug string
	Name string
	// RootNodes maps a path name ("explorer", "builder", ...) to its root node.
	RootNodes map[string]int64
}

// Node is a position in the learning graph. Nodes are read-only to the engine.
type Node struct {
	ID             int64
	ProjectID      uuid.UUID
	Title          string
	Description    string
	ContentText    string
	MediaURL       string
	ParentNodeID   *int64
	RequiredCredit int64
	RequiredBadges []string
	IsRoot         bool
	IsCheckpoint   bool
}

// Edge is a directed, conditionally gated transition between two nodes.
type Edge struct {
	ID              int64
	ProjectID       uuid.UUID
	FromNodeID      int64
	ToNodeID        int64
	ChoiceText      string
	ChoiceOrder     int
	CreditGain      int64
	CooldownSeconds int
	// Condition is nil when the edge is ungated.
	Condition Condition
}

// Cooldown returns the edge cooldown as a duration.
func (e *Edge) Cooldown() time.Duration {
	return time.Duration(e.CooldownSeconds) * time.Second
}

// Badge is a one-time achievement tied to a credit threshold and, optionally,
// a set of nodes that must have been reached.
type Badge struct {
	ID             int64
	ProjectID      uuid.UUID
	Slug           string
	Name           string
	Emoji          string
	Description    string
	RequiredCredit int64
	RequiredNodes  []int64
}

// EligibleWith reports whether every required node appears in visited.
// Badges without required nodes are eligible on the credit threshold alone.
func (b *Badge) EligibleWith(visited map[int64]struct{}) bool {
	for _, id := range b.RequiredNodes {
		if _, ok := visited[id]; !ok {
			return false
		}
	}
	return true
}

// BadgeGrant is the join record between a learner and an earned badge.
type BadgeGrant struct {
	Key       ProgressKey
	BadgeID   int64
	GrantedAt time.Time
}

// GrantedBadge is a badge together with the time it was granted.
type GrantedBadge struct {
	Badge
	GrantedAt time.Time
}
