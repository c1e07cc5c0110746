package traversal

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// sweepBadges grants every badge the learner has become eligible for. It must
// run inside the traversal transaction, after the position update.
func (s *Service) sweepBadges(ctx context.Context, key domain.ProgressKey, credit int64, journal *domain.Journal, at time.Time) ([]domain.Badge, error) {
	candidates, err := s.graph.ListBadgesUpToCredit(ctx, key.ProjectID, credit)
	if err != nil {
		return nil, fmt.Errorf("list badge candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	held, err := s.grants.GrantedBadgeIDs(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("list granted badges: %w", err)
	}

	visited := journal.Visited()
	var granted []domain.Badge
	for _, b := range candidates {
		if _, ok := held[b.ID]; ok {
			continue
		}
		if !b.EligibleWith(visited) {
			continue
		}
		inserted, err := s.grants.Create(ctx, domain.BadgeGrant{Key: key, BadgeID: b.ID, GrantedAt: at})
		if err != nil {
			return nil, fmt.Errorf("grant badge %s: %w", b.Slug, err)
		}
		if inserted {
			granted = append(granted, b)
		}
	}
	return granted, nil
}
