package traversal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// evaluate checks cond against the learner's pre-mutation credit and grants.
// It returns nil when the condition is satisfied.
func (s *Service) evaluate(ctx context.Context, key domain.ProgressKey, credit int64, cond domain.Condition) (*domain.Rejection, error) {
	switch c := cond.(type) {
	case nil:
		return nil, nil

	case domain.MinCredit:
		if credit < c.Value {
			return domain.RejectMinCredit(c.Value), nil
		}
		return nil, nil

	case domain.HasBadge:
		badge, err := s.graph.GetBadgeBySlug(ctx, key.ProjectID, c.Slug)
		if errors.Is(err, domain.ErrNotFound) {
			if domain.MissingBadgeSatisfies {
				return nil, nil
			}
			return domain.RejectMissingBadge(c.Slug), nil
		}
		if err != nil {
			return nil, fmt.Errorf("get badge %q: %w", c.Slug, err)
		}
		held, err := s.grants.Exists(ctx, key, badge.ID)
		if err != nil {
			return nil, fmt.Errorf("check badge grant: %w", err)
		}
		if !held {
			return domain.RejectMissingBadge(badge.Name), nil
		}
		return nil, nil

	case domain.UnknownCondition:
		s.log.WarnContext(ctx, "unknown condition operator",
			append(logAttrs(key),
				slog.String("op", c.Operator),
				slog.String("policy", string(s.cfg.UnknownConditionPolicy)))...)
		if s.cfg.UnknownConditionPolicy == domain.UnknownConditionDeny {
			return domain.RejectUnknownCondition(c.Operator), nil
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported condition type %T", cond)
	}
}
