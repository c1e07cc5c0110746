package traversal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// Traverse moves the learner across an edge. Expected refusals (unknown or
// misplaced edge, active cooldown, unmet condition) are reported through
// TraverseResult.Rejection, never as errors. Errors are infrastructure
// failures (domain.ErrUnavailable) or broken data (domain.ErrCorrupted).
//
// The position is re-validated under a row lock inside a single transaction,
// so of two concurrent traversals from the same node exactly one applies and
// the other is rejected with "Invalid path".
func (s *Service) Traverse(ctx context.Context, in TraverseInput) (*TraverseResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	project, key, err := s.resolve(in.Learner)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.traverse(ctx, project, key, in.EdgeID)
	if err != nil {
		if errors.Is(err, domain.ErrCorrupted) {
			s.log.ErrorContext(ctx, "traversal hit corrupted data",
				append(logAttrs(key), slog.Int64("edge_id", in.EdgeID), slog.String("error", err.Error()))...)
		}
		return nil, err
	}

	if res.Rejection != nil {
		s.log.DebugContext(ctx, "traversal rejected",
			append(logAttrs(key),
				slog.Int64("edge_id", in.EdgeID),
				slog.String("code", string(res.Rejection.Code)))...)
		return res, nil
	}

	s.log.InfoContext(ctx, "edge traversed",
		append(logAttrs(key),
			slog.Int64("edge_id", in.EdgeID),
			slog.Int64("node_id", res.NodeID),
			slog.Int64("credit_total", res.CreditTotal),
			slog.Int("badges_granted", len(res.GrantedBadges)))...)
	return res, nil
}

func (s *Service) traverse(ctx context.Context, project domain.Project, key domain.ProgressKey, edgeID int64) (*TraverseResult, error) {
	edge, err := s.graph.GetEdge(ctx, project.ID, edgeID)
	if errors.Is(err, domain.ErrNotFound) {
		return rejected(domain.RejectInvalidPath()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get edge: %w", err)
	}

	current, fromCache, err := s.state(ctx, project, key)
	if err != nil {
		return nil, fmt.Errorf("resolve state: %w", err)
	}
	if current.CurrentNodeID != edge.FromNodeID && fromCache {
		// A cached position may lag behind a concurrent write; decide on
		// durable truth before rejecting.
		durable, err := s.progress.Get(ctx, key)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// The row is gone; drop the orphaned entry and start over.
			s.invalidate(ctx, key, 0)
			if current, _, err = s.state(ctx, project, key); err != nil {
				return nil, fmt.Errorf("resolve state: %w", err)
			}
		case err != nil:
			return nil, fmt.Errorf("reload progress: %w", err)
		default:
			if durable.Version != current.Version {
				s.invalidate(ctx, key, durable.Version)
			}
			current = durable
		}
	}
	if current.CurrentNodeID != edge.FromNodeID {
		return rejected(domain.RejectInvalidPath()), nil
	}

	if rej, err := s.checkCooldown(ctx, key, edge); err != nil || rej != nil {
		return rejectedOrErr(rej, err)
	}

	var res *TraverseResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		res, txErr = s.apply(txCtx, key, edge)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if res.Accepted() {
		s.invalidate(ctx, key, res.version)
	}
	return res, nil
}

// checkCooldown rejects while a marker for the edge is live. For an edge with
// a cooldown the marker is placed atomically here, before conditions are
// evaluated, and stays even if the traversal is later rejected.
func (s *Service) checkCooldown(ctx context.Context, key domain.ProgressKey, edge *domain.Edge) (*domain.Rejection, error) {
	marker := cooldownKey(key, edge.ID)

	if cd := edge.Cooldown(); cd > 0 {
		placed, err := s.cache.SetNX(ctx, marker, cd)
		if err != nil {
			return nil, fmt.Errorf("set cooldown: %w", err)
		}
		if !placed {
			return domain.RejectCooldown(), nil
		}
		return nil, nil
	}

	active, err := s.cache.Exists(ctx, marker)
	if err != nil {
		return nil, fmt.Errorf("check cooldown: %w", err)
	}
	if active {
		return domain.RejectCooldown(), nil
	}
	return nil, nil
}

// apply runs inside the transaction: lock, re-validate, evaluate, mutate,
// sweep badges. A rejection returns a nil error so nothing is rolled back
// that was never written.
func (s *Service) apply(ctx context.Context, key domain.ProgressKey, edge *domain.Edge) (*TraverseResult, error) {
	locked, err := s.progress.GetForUpdate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("lock progress: %w", err)
	}
	if locked.CurrentNodeID != edge.FromNodeID {
		return rejected(domain.RejectInvalidPath()), nil
	}

	rej, err := s.evaluate(ctx, key, locked.CreditTotal, edge.Condition)
	if err != nil {
		return nil, fmt.Errorf("evaluate condition: %w", err)
	}
	if rej != nil {
		return rejected(rej), nil
	}

	journal, err := s.codec.Decode(locked.EncryptedJournal)
	if err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	now := s.now()
	journal.Append(domain.TraversalEvent{
		EdgeID:     edge.ID,
		From:       edge.FromNodeID,
		To:         edge.ToNodeID,
		At:         now,
		CreditGain: edge.CreditGain,
	})
	sealed, err := s.codec.Encode(journal)
	if err != nil {
		return nil, fmt.Errorf("encode journal: %w", err)
	}

	updated, err := s.progress.UpdatePosition(ctx, key, domain.PositionUpdate{
		ExpectedVersion:  locked.Version,
		CurrentNodeID:    edge.ToNodeID,
		CreditTotal:      locked.CreditTotal + edge.CreditGain,
		EncryptedJournal: sealed,
		UpdatedAt:        now,
	})
	if errors.Is(err, domain.ErrConflict) {
		return rejected(domain.RejectInvalidPath()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("update position: %w", err)
	}

	granted, err := s.sweepBadges(ctx, key, updated.CreditTotal, &journal, now)
	if err != nil {
		return nil, err
	}

	return &TraverseResult{
		NodeID:        updated.CurrentNodeID,
		CreditTotal:   updated.CreditTotal,
		GrantedBadges: granted,
		version:       updated.Version,
	}, nil
}

func rejectedOrErr(rej *domain.Rejection, err error) (*TraverseResult, error) {
	if err != nil {
		return nil, err
	}
	return rejected(rej), nil
}
