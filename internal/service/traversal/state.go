package traversal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

const (
	invalidateTimeout = 2 * time.Second

	// invalidationMarkerTTL is the minimum lifetime of the marker a commit
	// leaves behind. It must outlive any cache-miss load in flight.
	invalidationMarkerTTL = time.Minute
)

// snapshot is the cached form of a progress row.
type snapshot struct {
	UserID           int64     `json:"user_id"`
	CommunityID      int64     `json:"community_id"`
	ProjectID        uuid.UUID `json:"project_id"`
	CurrentNodeID    int64     `json:"node_id"`
	CreditTotal      int64     `json:"credit_total"`
	EncryptedJournal []byte    `json:"journal"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toSnapshot(p *domain.Progress) snapshot {
	return snapshot{
		UserID:           p.Key.UserID,
		CommunityID:      p.Key.CommunityID,
		ProjectID:        p.Key.ProjectID,
		CurrentNodeID:    p.CurrentNodeID,
		CreditTotal:      p.CreditTotal,
		EncryptedJournal: p.EncryptedJournal,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (s snapshot) progress() *domain.Progress {
	return &domain.Progress{
		Key: domain.ProgressKey{
			UserID:      s.UserID,
			CommunityID: s.CommunityID,
			ProjectID:   s.ProjectID,
		},
		CurrentNodeID:    s.CurrentNodeID,
		CreditTotal:      s.CreditTotal,
		EncryptedJournal: s.EncryptedJournal,
		Version:          s.Version,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// GetState returns the learner's progress; CurrentNodeID is the node they
// occupy. A learner seen for the first time is created at the root node of
// the default path. Reads are served from the cache when possible.
func (s *Service) GetState(ctx context.Context, in Learner) (*domain.Progress, error) {
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
	return p, err
}

// state resolves progress cache-first and reports whether it came from the
// cache.
func (s *Service) state(ctx context.Context, project domain.Project, key domain.ProgressKey) (*domain.Progress, bool, error) {
	p, ok, err := s.cachedState(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return p, true, nil
	}

	// The shared load does not inherit the starter's cancellation. Each
	// caller waits on its own context.
	ch := s.misses.DoChan(key.String(), func() (any, error) {
		loadCtx, cancel := s.detach(ctx)
		defer cancel()
		return s.loadState(loadCtx, project, key)
	})

	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("load state: %w: %w", domain.ErrUnavailable, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		// Callers sharing a load get the same pointer; hand each its own copy.
		loaded := *r.Val.(*domain.Progress)
		return &loaded, false, nil
	}
}

func (s *Service) cachedState(ctx context.Context, key domain.ProgressKey) (*domain.Progress, bool, error) {
	raw, ok, err := s.cache.Get(ctx, stateCacheKey(key))
	if err != nil {
		return nil, false, fmt.Errorf("read state cache: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.progress().Key != key {
		s.log.WarnContext(ctx, "discarding unreadable state cache entry", logAttrs(key)...)
		if delErr := s.cache.Delete(ctx, stateCacheKey(key)); delErr != nil {
			return nil, false, fmt.Errorf("drop state cache: %w", delErr)
		}
		return nil, false, nil
	}
	return snap.progress(), true, nil
}

// loadState reads durable progress, creating it at the root node if absent,
// and populates the cache.
func (s *Service) loadState(ctx context.Context, project domain.Project, key domain.ProgressKey) (*domain.Progress, error) {
	p, err := s.progress.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		p, err = s.createAtRoot(ctx, project, key)
	}
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(toSnapshot(p))
	if err != nil {
		return nil, fmt.Errorf("marshal state snapshot: %w", err)
	}
	if err := s.cache.Set(ctx, stateCacheKey(key), raw, s.cfg.StateTTL); err != nil {
		return nil, fmt.Errorf("write state cache: %w", err)
	}

	// A commit may have invalidated the entry after the row above was read.
	// Its marker carries the committed version; an older snapshot is dropped.
	superseded, err := s.invalidatedAfter(ctx, key, p.Version)
	if err != nil {
		return nil, err
	}
	if superseded {
		s.log.DebugContext(ctx, "dropping superseded state snapshot",
			append(logAttrs(key), slog.Int64("version", p.Version))...)
		if err := s.cache.Delete(ctx, stateCacheKey(key)); err != nil {
			return nil, fmt.Errorf("drop superseded state cache: %w", err)
		}
	}
	return p, nil
}

// invalidatedAfter reports whether a commit newer than version has
// invalidated the learner's state recently.
func (s *Service) invalidatedAfter(ctx context.Context, key domain.ProgressKey, version int64) (bool, error) {
	raw, ok, err := s.cache.Get(ctx, invalidationMarkerKey(key))
	if err != nil {
		return false, fmt.Errorf("read invalidation marker: %w", err)
	}
	if !ok {
		return false, nil
	}
	committed, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return true, nil
	}
	return committed > version, nil
}

func (s *Service) createAtRoot(ctx context.Context, project domain.Project, key domain.ProgressKey) (*domain.Progress, error) {
	rootID, ok := project.RootNodes[s.cfg.DefaultPath]
	if !ok {
		return nil, fmt.Errorf("project %s has no %q root: %w", project.Slug, s.cfg.DefaultPath, domain.ErrCorrupted)
	}
	if _, err := s.graph.GetNode(ctx, project.ID, rootID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.ErrorContext(ctx, "configured root node missing",
				append(logAttrs(key), slog.Int64("node_id", rootID))...)
			return nil, fmt.Errorf("root node %d: %w", rootID, domain.ErrCorrupted)
		}
		return nil, fmt.Errorf("get root node: %w", err)
	}

	journal, err := s.codec.Encode(domain.NewJournal())
	if err != nil {
		return nil, fmt.Errorf("encode journal: %w", err)
	}

	now := s.now()
	p, created, err := s.progress.CreateIfAbsent(ctx, domain.Progress{
		Key:              key,
		CurrentNodeID:    rootID,
		EncryptedJournal: journal,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}

	if created {
		s.log.InfoContext(ctx, "learner started", append(logAttrs(key), slog.Int64("node_id", rootID))...)
	}
	return p, nil
}

// invalidate drops the cached state after a committed mutation. It runs even
// if the caller has gone away. A failure is logged, not returned.
//
// version is the committed row version. When positive it is recorded in a
// short-lived marker so that a cache-miss load that read an older row does
// not leave its snapshot behind.
func (s *Service) invalidate(ctx context.Context, key domain.ProgressKey, version int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	if version > 0 {
		marker := []byte(strconv.FormatInt(version, 10))
		if err := s.cache.Set(ctx, invalidationMarkerKey(key), marker, s.markerTTL()); err != nil {
			s.log.WarnContext(ctx, "invalidation marker write failed",
				append(logAttrs(key), slog.String("error", err.Error()))...)
		}
	}
	if err := s.cache.Delete(ctx, stateCacheKey(key)); err != nil {
		s.log.WarnContext(ctx, "state cache invalidation failed",
			append(logAttrs(key), slog.String("error", err.Error()))...)
	}
}
