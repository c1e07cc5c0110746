package traversal

import (
	"context"
	"fmt"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// Leaderboard returns the top learners of a community on a project by credit.
func (s *Service) Leaderboard(ctx context.Context, in LeaderboardInput) ([]domain.LeaderboardEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	project, _, err := s.resolve(Learner{CommunityID: in.CommunityID, Project: in.Project})
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultLeaderboardLimit
	}
	limit = min(limit, s.cfg.LeaderboardMax)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries, err := s.progress.Leaderboard(ctx, in.CommunityID, project.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return entries, nil
}
