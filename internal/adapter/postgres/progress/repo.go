// Package progress implements the learner progress repository using PostgreSQL.
// A row holds one learner's position, credit and encrypted journal for a
// (user, community, project) triple.
package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/pathgraph/internal/adapter/postgres"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

const (
	table  = "user_progress"
	entity = "user_progress"
)

var columns = []string{
	"user_id", "community_id", "project_id",
	"current_node_id", "credit_total", "encrypted_journal",
	"version", "created_at", "updated_at",
}

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the progress row for key.
// Returns domain.ErrNotFound if the learner has no row yet.
func (r *Repo) Get(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProgress(postgres.QueryRow(ctx, q, selectByKey(key)))
	if err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	return p, nil
}

// GetForUpdate returns the progress row for key and locks it until the
// surrounding transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("%s %s: row lock requires a transaction", entity, key)
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProgress(postgres.QueryRow(ctx, q, selectByKey(key).Suffix("FOR UPDATE")))
	if err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	return p, nil
}

// Leaderboard returns up to limit learners of a community ordered by credit.
// Ties are broken by earliest creation so ranks are stable.
func (r *Repo) Leaderboard(ctx context.Context, communityID int64, projectID uuid.UUID, limit int) ([]domain.LeaderboardEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select("user_id", "credit_total", "current_node_id").
		From(table).
		Where(squirrel.Eq{"community_id": communityID, "project_id": projectID}).
		OrderBy("credit_total DESC", "created_at ASC", "user_id ASC").
		Limit(uint64(limit))

	rows, err := postgres.Query(ctx, q, b)
	if err != nil {
		return nil, postgres.MapError(err, "leaderboard", communityID)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		e := domain.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.UserID, &e.CreditTotal, &e.CurrentNodeID); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "leaderboard", communityID)
	}

	return entries, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateIfAbsent inserts p unless a row for its key already exists. It returns
// the stored row and whether this call created it. Concurrent first calls for
// the same key yield exactly one row: the loser reads the winner's row.
func (r *Repo) CreateIfAbsent(ctx context.Context, p domain.Progress) (*domain.Progress, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(
			p.Key.UserID, p.Key.CommunityID, p.Key.ProjectID,
			p.CurrentNodeID, p.CreditTotal, p.EncryptedJournal,
			1, p.CreatedAt, p.UpdatedAt,
		).
		Suffix("ON CONFLICT (user_id, community_id, project_id) DO NOTHING").
		Suffix(returning())

	created, err := scanProgress(postgres.QueryRow(ctx, q, b))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, postgres.MapError(err, entity, p.Key)
	}

	existing, err := r.Get(ctx, p.Key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UpdatePosition applies upd if the stored version still equals
// upd.ExpectedVersion and returns the new row.
// Returns domain.ErrConflict if another writer got there first.
func (r *Repo) UpdatePosition(ctx context.Context, key domain.ProgressKey, upd domain.PositionUpdate) (*domain.Progress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Update(table).
		Set("current_node_id", upd.CurrentNodeID).
		Set("credit_total", upd.CreditTotal).
		Set("encrypted_journal", upd.EncryptedJournal).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", upd.UpdatedAt).
		Where(keyPredicate(key)).
		Where(squirrel.Eq{"version": upd.ExpectedVersion}).
		Suffix(returning())

	p, err := scanProgress(postgres.QueryRow(ctx, q, b))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: version %d is stale: %w", entity, key, upd.ExpectedVersion, domain.ErrConflict)
	}
	if err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func keyPredicate(key domain.ProgressKey) squirrel.Eq {
	return squirrel.Eq{
		"user_id":      key.UserID,
		"community_id": key.CommunityID,
		"project_id":   key.ProjectID,
	}
}

func selectByKey(key domain.ProgressKey) squirrel.SelectBuilder {
	return postgres.Builder.
		Select(columns...).
		From(table).
		Where(keyPredicate(key))
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func scanProgress(row pgx.Row) (*domain.Progress, error) {
	var p domain.Progress
	err := row.Scan(
		&p.Key.UserID, &p.Key.CommunityID, &p.Key.ProjectID,
		&p.CurrentNodeID, &p.CreditTotal, &p.EncryptedJournal,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
