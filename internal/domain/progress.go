package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProgressKey identifies one learner's progress: a chat-platform user inside
// a community, on one project. Progress on different communities or projects
// is independent.
type ProgressKey struct {
	UserID      int64
	CommunityID int64
	ProjectID   uuid.UUID
}

func (k ProgressKey) String() string {
	return fmt.Sprintf("%d/%d/%s", k.UserID, k.CommunityID, k.ProjectID)
}

// Progress is the durable traversal state of a learner.
type Progress struct {
	Key              ProgressKey
	CurrentNodeID    int64
	CreditTotal      int64
	EncryptedJournal []byte
	// Version increments on every write and guards position updates.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PositionUpdate is the mutation applied by a successful traversal or a
// journal-only write. ExpectedVersion must match the stored row.
type PositionUpdate struct {
	ExpectedVersion  int64
	CurrentNodeID    int64
	CreditTotal      int64
	EncryptedJournal []byte
	UpdatedAt        time.Time
}

// LeaderboardEntry is one row of a community leaderboard.
type LeaderboardEntry struct {
	Rank          int
	UserID        int64
	CreditTotal   int64
	CurrentNodeID int64
}
