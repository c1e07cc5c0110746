package traversal

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// Options returns the learner's current node and its outgoing edges in choice
// order. Each option is marked locked when its condition is unmet right now;
// cooldowns are not reflected.
func (s *Service) Options(ctx context.Context, in Learner) (*OptionsResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	project, key, err := s.resolve(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, _, err := s.state(ctx, project, key)
	if err != nil {
		return nil, err
	}

	node, err := s.currentNode(ctx, p)
	if err != nil {
		return nil, err
	}

	edges, err := s.graph.ListEdgesFrom(ctx, project.ID, p.CurrentNodeID)
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}

	options := make([]Option, 0, len(edges))
	for _, e := range edges {
		rej, err := s.evaluate(ctx, key, p.CreditTotal, e.Condition)
		if err != nil {
			return nil, fmt.Errorf("evaluate edge %d: %w", e.ID, err)
		}
		opt := Option{Edge: e}
		if rej != nil {
			opt.Locked = true
			opt.Reason = rej.Reason
		}
		options = append(options, opt)
	}

	return &OptionsResult{Progress: *p, Node: *node, Options: options}, nil
}

// currentNode loads the node the learner occupies. A missing node means the
// position invariant is broken.
func (s *Service) currentNode(ctx context.Context, p *domain.Progress) (*domain.Node, error) {
	node, err := s.graph.GetNode(ctx, p.Key.ProjectID, p.CurrentNodeID)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.ErrorContext(ctx, "learner positioned on missing node", logAttrs(p.Key)...)
		return nil, fmt.Errorf("current node %d: %w", p.CurrentNodeID, domain.ErrCorrupted)
	}
	if err != nil {
		return nil, fmt.Errorf("get current node: %w", err)
	}
	return node, nil
}
