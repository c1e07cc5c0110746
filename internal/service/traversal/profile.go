package traversal

import (
	"context"
	"fmt"
)

// Profile returns the learner's state, the node they occupy, their badges and
// their decoded journal.
func (s *Service) Profile(ctx context.Context, in Learner) (*ProfileResult, error) {
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

	badges, err := s.grants.ListByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}

	journal, err := s.codec.Decode(p.EncryptedJournal)
	if err != nil {
		s.log.ErrorContext(ctx, "journal unreadable", logAttrs(key)...)
		return nil, fmt.Errorf("decode journal: %w", err)
	}

	return &ProfileResult{
		Progress: *p,
		Node:     *node,
		Badges:   badges,
		Journal:  journal,
	}, nil
}
