package domain

import "fmt"

// RejectionCode classifies an expected, user-facing traversal refusal.
type RejectionCode string

const (
	RejectionInvalidPath    RejectionCode = "INVALID_PATH"
	RejectionCooldown       RejectionCode = "COOLDOWN_ACTIVE"
	RejectionConditionUnmet RejectionCode = "CONDITION_UNMET"
)

// Rejection is returned as a value, never as an error: callers render Reason.
type Rejection struct {
	Code   RejectionCode
	Reason string
}

// RejectInvalidPath is used for unknown edges and edges that do not start at
// the learner's current node.
func RejectInvalidPath() *Rejection {
	return &Rejection{Code: RejectionInvalidPath, Reason: "Invalid path"}
}

// RejectCooldown is used while a cooldown marker for the edge is present.
func RejectCooldown() *Rejection {
	return &Rejection{Code: RejectionCooldown, Reason: "Cooldown active"}
}

// RejectMinCredit names the credit required by a min_credit condition.
func RejectMinCredit(required int64) *Rejection {
	return &Rejection{Code: RejectionConditionUnmet, Reason: fmt.Sprintf("Requires %d credit", required)}
}

// RejectMissingBadge names the badge required by a has_badge condition.
func RejectMissingBadge(name string) *Rejection {
	return &Rejection{Code: RejectionConditionUnmet, Reason: fmt.Sprintf("Requires '%s' badge", name)}
}

// RejectUnknownCondition is used when unknown operators are configured to deny.
func RejectUnknownCondition(op string) *Rejection {
	return &Rejection{Code: RejectionConditionUnmet, Reason: fmt.Sprintf("Unsupported requirement '%s'", op)}
}
