package traversal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// SetPreference stores a named preference in the learner's encrypted journal.
func (s *Service) SetPreference(ctx context.Context, in SetPreferenceInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	project, key, err := s.resolve(in.Learner)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// Make sure the row exists before locking it.
	if _, _, err := s.state(ctx, project, key); err != nil {
		return err
	}

	var version int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.progress.GetForUpdate(txCtx, key)
		if err != nil {
			return fmt.Errorf("lock progress: %w", err)
		}

		journal, err := s.codec.Decode(locked.EncryptedJournal)
		if err != nil {
			return fmt.Errorf("decode journal: %w", err)
		}
		journal.SetPreference(in.Name, in.Value)
		sealed, err := s.codec.Encode(journal)
		if err != nil {
			return fmt.Errorf("encode journal: %w", err)
		}

		updated, err := s.progress.UpdatePosition(txCtx, key, domain.PositionUpdate{
			ExpectedVersion:  locked.Version,
			CurrentNodeID:    locked.CurrentNodeID,
			CreditTotal:      locked.CreditTotal,
			EncryptedJournal: sealed,
			UpdatedAt:        s.now(),
		})
		if err != nil {
			return fmt.Errorf("update journal: %w", err)
		}
		version = updated.Version
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, key, version)
	s.log.InfoContext(ctx, "preference updated", append(logAttrs(key), slog.String("name", in.Name))...)
	return nil
}
