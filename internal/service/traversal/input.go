package traversal

import (
	"regexp"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

const (
	defaultLeaderboardLimit = 10
	maxPreferenceValueLen   = 1024
)

var preferenceNameRe = regexp.MustCompile(`^[a-z][a-z0-9_.-]{0,63}$`)

// Learner identifies a learner within a community on a project. An empty
// Project selects the default project.
type Learner struct {
	UserID      int64
	CommunityID int64
	Project     string
}

func (l Learner) validate() []domain.FieldError {
	var errs []domain.FieldError
	if l.UserID == 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if l.CommunityID == 0 {
		errs = append(errs, domain.FieldError{Field: "community_id", Message: "required"})
	}
	return errs
}

// Validate checks all fields and collects all errors.
func (l Learner) Validate() error {
	if errs := l.validate(); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// TraverseInput holds the parameters for traversing an edge.
type TraverseInput struct {
	Learner
	EdgeID int64
}

// Validate checks all fields and collects all errors.
func (i *TraverseInput) Validate() error {
	errs := i.Learner.validate()
	if i.EdgeID <= 0 {
		errs = append(errs, domain.FieldError{Field: "edge_id", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SetPreferenceInput holds the parameters for storing a journal preference.
type SetPreferenceInput struct {
	Learner
	Name  string
	Value string
}

// Validate checks all fields and collects all errors.
func (i *SetPreferenceInput) Validate() error {
	errs := i.Learner.validate()
	if !preferenceNameRe.MatchString(i.Name) {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must be 1-64 lowercase letters, digits, '_', '.' or '-', starting with a letter"})
	}
	if len(i.Value) > maxPreferenceValueLen {
		errs = append(errs, domain.FieldError{Field: "value", Message: "max 1024 bytes"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LeaderboardInput holds the parameters for a community leaderboard.
// Limit 0 selects the default; larger limits are clamped to the configured
// maximum.
type LeaderboardInput struct {
	CommunityID int64
	Project     string
	Limit       int
}

// Validate checks all fields and collects all errors.
func (i *LeaderboardInput) Validate() error {
	var errs []domain.FieldError
	if i.CommunityID == 0 {
		errs = append(errs, domain.FieldError{Field: "community_id", Message: "required"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
