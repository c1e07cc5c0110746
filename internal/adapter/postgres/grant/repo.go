// Package grant implements the badge grant repository using PostgreSQL.
package grant

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/pathgraph/internal/adapter/postgres"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

const table = "badge_grants"

// Repo provides badge grant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new grant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create records a grant. It reports false without error when the learner
// already holds the badge, so repeated sweeps never duplicate a grant.
func (r *Repo) Create(ctx context.Context, g domain.BadgeGrant) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Insert(table).
		Columns("user_id", "community_id", "project_id", "badge_id", "granted_at").
		Values(g.Key.UserID, g.Key.CommunityID, g.Key.ProjectID, g.BadgeID, g.GrantedAt).
		Suffix("ON CONFLICT (user_id, community_id, project_id, badge_id) DO NOTHING")

	tag, err := postgres.Exec(ctx, q, b)
	if err != nil {
		return false, postgres.MapError(err, "badge grant", g.BadgeID)
	}
	return tag.RowsAffected() == 1, nil
}

// Exists reports whether the learner holds badgeID.
func (r *Repo) Exists(ctx context.Context, key domain.ProgressKey, badgeID int64) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sub := postgres.Builder.
		Select("1").
		From(table).
		Where(keyPredicate(key)).
		Where(squirrel.Eq{"badge_id": badgeID})
	b := postgres.Builder.Select().Column(squirrel.Expr("EXISTS (?)", sub))

	var exists bool
	if err := postgres.QueryRow(ctx, q, b).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "badge grant", badgeID)
	}
	return exists, nil
}

// GrantedBadgeIDs returns the set of badges the learner holds.
func (r *Repo) GrantedBadgeIDs(ctx context.Context, key domain.ProgressKey) (map[int64]struct{}, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select("badge_id").
		From(table).
		Where(keyPredicate(key))

	rows, err := postgres.Query(ctx, q, b)
	if err != nil {
		return nil, postgres.MapError(err, "badge grants", key)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan badge grant: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "badge grants", key)
	}
	return ids, nil
}

// ListByKey returns the learner's badges with their grant time, oldest first.
func (r *Repo) ListByKey(ctx context.Context, key domain.ProgressKey) ([]domain.GrantedBadge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select(
			"b.project_id", "b.badge_id", "b.slug", "b.name", "b.emoji", "b.description",
			"b.required_credit", "b.required_nodes", "g.granted_at",
		).
		From(table + " g").
		Join("badges b ON b.project_id = g.project_id AND b.badge_id = g.badge_id").
		Where(squirrel.Eq{
			"g.user_id":      key.UserID,
			"g.community_id": key.CommunityID,
			"g.project_id":   key.ProjectID,
		}).
		OrderBy("g.granted_at ASC", "b.badge_id ASC")

	rows, err := postgres.Query(ctx, q, b)
	if err != nil {
		return nil, postgres.MapError(err, "badge grants", key)
	}
	defer rows.Close()

	granted := []domain.GrantedBadge{}
	for rows.Next() {
		var gb domain.GrantedBadge
		err := rows.Scan(
			&gb.ProjectID, &gb.ID, &gb.Slug, &gb.Name, &gb.Emoji, &gb.Description,
			&gb.RequiredCredit, &gb.RequiredNodes, &gb.GrantedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan granted badge: %w", err)
		}
		granted = append(granted, gb)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "badge grants", key)
	}
	return granted, nil
}

func keyPredicate(key domain.ProgressKey) squirrel.Eq {
	return squirrel.Eq{
		"user_id":      key.UserID,
		"community_id": key.CommunityID,
		"project_id":   key.ProjectID,
	}
}
