package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Condition operators as stored in edges.condition.
const (
	ConditionOpMinCredit = "min_credit"
	ConditionOpHasBadge  = "has_badge"
)

// Policies for conditions the engine cannot fully evaluate.
const (
	// MissingBadgeSatisfies: a has_badge condition naming a badge that does not
	// exist in the project is satisfied, so an unreachable requirement cannot
	// lock learners out of the graph.
	MissingBadgeSatisfies = true

	// DefaultUnknownConditionPolicy applies to operators this build does not know.
	DefaultUnknownConditionPolicy = UnknownConditionAllow
)

// UnknownConditionPolicy decides the outcome of a condition with an
// unrecognised operator.
type UnknownConditionPolicy string

const (
	UnknownConditionAllow UnknownConditionPolicy = "allow"
	UnknownConditionDeny  UnknownConditionPolicy = "deny"
)

func (p UnknownConditionPolicy) IsValid() bool {
	return p == UnknownConditionAllow || p == UnknownConditionDeny
}

// Condition is a predicate gating an edge. The set of implementations is
// closed: MinCredit, HasBadge and UnknownCondition.
type Condition interface {
	Op() string
	isCondition()
}

// MinCredit is satisfied when the learner's credit total is at least Value.
type MinCredit struct {
	Value int64
}

func (MinCredit) Op() string   { return ConditionOpMinCredit }
func (MinCredit) isCondition() {}

// HasBadge is satisfied when the learner holds the badge with Slug.
type HasBadge struct {
	Slug string
}

func (HasBadge) Op() string   { return ConditionOpHasBadge }
func (HasBadge) isCondition() {}

// UnknownCondition preserves an operator written by a newer graph definition.
type UnknownCondition struct {
	Operator string
	Raw      json.RawMessage
}

func (c UnknownCondition) Op() string { return c.Operator }
func (UnknownCondition) isCondition() {}

type conditionJSON struct {
	Op   string `json:"op"`
	Val  *int64 `json:"val,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// ParseCondition decodes the JSON form of a condition. Empty input and JSON
// null yield a nil Condition.
func ParseCondition(raw []byte) (Condition, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var c conditionJSON
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse condition: %w", err)
	}

	switch c.Op {
	case ConditionOpMinCredit:
		if c.Val == nil {
			return nil, fmt.Errorf("parse condition: %s requires val", c.Op)
		}
		return MinCredit{Value: *c.Val}, nil
	case ConditionOpHasBadge:
		if c.Slug == "" {
			return nil, fmt.Errorf("parse condition: %s requires slug", c.Op)
		}
		return HasBadge{Slug: c.Slug}, nil
	case "":
		return nil, fmt.Errorf("parse condition: missing op")
	default:
		return UnknownCondition{Operator: c.Op, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

// MarshalCondition encodes a condition into its stored JSON form.
// A nil condition encodes to nil.
func MarshalCondition(c Condition) ([]byte, error) {
	switch v := c.(type) {
	case nil:
		return nil, nil
	case MinCredit:
		val := v.Value
		return json.Marshal(conditionJSON{Op: ConditionOpMinCredit, Val: &val})
	case HasBadge:
		return json.Marshal(conditionJSON{Op: ConditionOpHasBadge, Slug: v.Slug})
	case UnknownCondition:
		return v.Raw, nil
	default:
		return nil, fmt.Errorf("marshal condition: unsupported type %T", c)
	}
}
