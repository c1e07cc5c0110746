package traversal

import "github.com/heartmarshall/pathgraph/internal/domain"

// TraverseResult is the outcome of a traversal. Exactly one of Rejection and
// NodeID is meaningful: a rejected traversal leaves NodeID zero.
type TraverseResult struct {
	NodeID        int64
	CreditTotal   int64
	GrantedBadges []domain.Badge
	Rejection     *domain.Rejection

	version int64
}

// Accepted reports whether the traversal was applied.
func (r *TraverseResult) Accepted() bool {
	return r.Rejection == nil
}

func rejected(r *domain.Rejection) *TraverseResult {
	return &TraverseResult{Rejection: r}
}

// Option is an outgoing edge of the learner's current node.
type Option struct {
	Edge domain.Edge
	// Locked is set when the edge condition is currently unmet; Reason then
	// carries the message a traversal would be rejected with.
	Locked bool
	Reason string
}

// OptionsResult describes the learner's current node and where they can go.
type OptionsResult struct {
	Progress domain.Progress
	Node     domain.Node
	Options  []Option
}

// ProfileResult is a learner's state with earned badges and decoded journal.
type ProfileResult struct {
	Progress domain.Progress
	Node     domain.Node
	Badges   []domain.GrantedBadge
	Journal  domain.Journal
}
