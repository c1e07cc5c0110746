// Package graph implements read access to a project's nodes, edges and badges
// using PostgreSQL, plus the bulk upserts used by the graph loader.
package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/pathgraph/internal/adapter/postgres"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

var (
	nodeColumns = []string{
		"project_id", "node_id", "title", "description", "content_text", "media_url",
		"parent_node_id", "required_credit", "required_badges", "is_root", "is_checkpoint",
	}
	edgeColumns = []string{
		"project_id", "edge_id", "from_node_id", "to_node_id", "choice_text", "choice_order",
		"condition", "credit_gain", "cooldown_seconds",
	}
	badgeColumns = []string{
		"project_id", "badge_id", "slug", "name", "emoji", "description",
		"required_credit", "required_nodes",
	}
)

// Repo provides graph persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new graph repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Nodes
// ---------------------------------------------------------------------------

// GetNode returns a node by id within a project.
func (r *Repo) GetNode(ctx context.Context, projectID uuid.UUID, nodeID int64) (*domain.Node, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select(nodeColumns...).
		From("nodes").
		Where(squirrel.Eq{"project_id": projectID, "node_id": nodeID})

	n, err := scanNode(postgres.QueryRow(ctx, q, b))
	if err != nil {
		return nil, postgres.MapError(err, "node", nodeID)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Edges
// ---------------------------------------------------------------------------

// GetEdge returns an edge by id within a project.
// A stored condition that cannot be decoded yields domain.ErrCorrupted.
func (r *Repo) GetEdge(ctx context.Context, projectID uuid.UUID, edgeID int64) (*domain.Edge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select(edgeColumns...).
		From("edges").
		Where(squirrel.Eq{"project_id": projectID, "edge_id": edgeID})

	e, err := scanEdge(postgres.QueryRow(ctx, q, b))
	if err != nil {
		if errors.Is(err, domain.ErrCorrupted) {
			return nil, fmt.Errorf("edge %d: %w", edgeID, err)
		}
		return nil, postgres.MapError(err, "edge", edgeID)
	}
	return e, nil
}

// ListEdgesFrom returns the edges leaving nodeID ordered by choice order.
// Returns an empty slice (not nil) for a node without outgoing edges.
func (r *Repo) ListEdgesFrom(ctx context.Context, projectID uuid.UUID, nodeID int64) ([]domain.Edge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select(edgeColumns...).
		From("edges").
		Where(squirrel.Eq{"project_id": projectID, "from_node_id": nodeID}).
		OrderBy("choice_order ASC", "edge_id ASC")

	rows, err := postgres.Query(ctx, q, b)
	if err != nil {
		return nil, postgres.MapError(err, "edges from node", nodeID)
	}
	defer rows.Close()

	edges := []domain.Edge{}
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("edges from node %d: %w", nodeID, err)
		}
		edges = append(edges, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "edges from node", nodeID)
	}

	return edges, nil
}

// ---------------------------------------------------------------------------
// Badges
// ---------------------------------------------------------------------------

// GetBadgeBySlug returns a badge by slug within a project.
func (r *Repo) GetBadgeBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*domain.Badge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select(badgeColumns...).
		From("badges").
		Where(squirrel.Eq{"project_id": projectID, "slug": slug})

	badge, err := scanBadge(postgres.QueryRow(ctx, q, b))
	if err != nil {
		return nil, postgres.MapError(err, "badge", slug)
	}
	return badge, nil
}

// ListBadgesUpToCredit returns the badges whose credit threshold is at most
// credit, ordered by threshold then id.
func (r *Repo) ListBadgesUpToCredit(ctx context.Context, projectID uuid.UUID, credit int64) ([]domain.Badge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.
		Select(badgeColumns...).
		From("badges").
		Where(squirrel.Eq{"project_id": projectID}).
		Where(squirrel.LtOrEq{"required_credit": credit}).
		OrderBy("required_credit ASC", "badge_id ASC")

	rows, err := postgres.Query(ctx, q, b)
	if err != nil {
		return nil, postgres.MapError(err, "badges", projectID)
	}
	defer rows.Close()

	badges := []domain.Badge{}
	for rows.Next() {
		badge, err := scanBadge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, *badge)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "badges", projectID)
	}

	return badges, nil
}

// ---------------------------------------------------------------------------
// Bulk upserts (graph loader)
// ---------------------------------------------------------------------------

// UpsertNodes inserts or replaces nodes. Intended to run inside a transaction
// together with UpsertEdges and UpsertBadges; foreign keys between nodes and
// edges are checked at commit.
func (r *Repo) UpsertNodes(ctx context.Context, nodes []domain.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.Insert("nodes").Columns(nodeColumns...)
	for _, n := range nodes {
		requiredBadges := n.RequiredBadges
		if requiredBadges == nil {
			requiredBadges = []string{}
		}
		b = b.Values(
			n.ProjectID, n.ID, n.Title, n.Description, n.ContentText, n.MediaURL,
			n.ParentNodeID, n.RequiredCredit, requiredBadges, n.IsRoot, n.IsCheckpoint,
		)
	}
	b = b.Suffix(`ON CONFLICT (project_id, node_id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		content_text = EXCLUDED.content_text,
		media_url = EXCLUDED.media_url,
		parent_node_id = EXCLUDED.parent_node_id,
		required_credit = EXCLUDED.required_credit,
		required_badges = EXCLUDED.required_badges,
		is_root = EXCLUDED.is_root,
		is_checkpoint = EXCLUDED.is_checkpoint,
		updated_at = now()`)

	if _, err := postgres.Exec(ctx, q, b); err != nil {
		return postgres.MapError(err, "nodes", len(nodes))
	}
	return nil
}

// UpsertEdges inserts or replaces edges.
func (r *Repo) UpsertEdges(ctx context.Context, edges []domain.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.Insert("edges").Columns(edgeColumns...)
	for _, e := range edges {
		cond, err := domain.MarshalCondition(e.Condition)
		if err != nil {
			return fmt.Errorf("edge %d: %w", e.ID, err)
		}
		b = b.Values(
			e.ProjectID, e.ID, e.FromNodeID, e.ToNodeID, e.ChoiceText, e.ChoiceOrder,
			cond, e.CreditGain, e.CooldownSeconds,
		)
	}
	b = b.Suffix(`ON CONFLICT (project_id, edge_id) DO UPDATE SET
		from_node_id = EXCLUDED.from_node_id,
		to_node_id = EXCLUDED.to_node_id,
		choice_text = EXCLUDED.choice_text,
		choice_order = EXCLUDED.choice_order,
		condition = EXCLUDED.condition,
		credit_gain = EXCLUDED.credit_gain,
		cooldown_seconds = EXCLUDED.cooldown_seconds`)

	if _, err := postgres.Exec(ctx, q, b); err != nil {
		return postgres.MapError(err, "edges", len(edges))
	}
	return nil
}

// UpsertBadges inserts or replaces badges.
func (r *Repo) UpsertBadges(ctx context.Context, badges []domain.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder.Insert("badges").Columns(badgeColumns...)
	for _, badge := range badges {
		requiredNodes := badge.RequiredNodes
		if requiredNodes == nil {
			requiredNodes = []int64{}
		}
		b = b.Values(
			badge.ProjectID, badge.ID, badge.Slug, badge.Name, badge.Emoji, badge.Description,
			badge.RequiredCredit, requiredNodes,
		)
	}
	b = b.Suffix(`ON CONFLICT (project_id, badge_id) DO UPDATE SET
		slug = EXCLUDED.slug,
		name = EXCLUDED.name,
		emoji = EXCLUDED.emoji,
		description = EXCLUDED.description,
		required_credit = EXCLUDED.required_credit,
		required_nodes = EXCLUDED.required_nodes`)

	if _, err := postgres.Exec(ctx, q, b); err != nil {
		return postgres.MapError(err, "badges", len(badges))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanNode(row pgx.Row) (*domain.Node, error) {
	var n domain.Node
	err := row.Scan(
		&n.ProjectID, &n.ID, &n.Title, &n.Description, &n.ContentText, &n.MediaURL,
		&n.ParentNodeID, &n.RequiredCredit, &n.RequiredBadges, &n.IsRoot, &n.IsCheckpoint,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func scanEdge(row pgx.Row) (*domain.Edge, error) {
	var (
		e    domain.Edge
		cond []byte
	)
	err := row.Scan(
		&e.ProjectID, &e.ID, &e.FromNodeID, &e.ToNodeID, &e.ChoiceText, &e.ChoiceOrder,
		&cond, &e.CreditGain, &e.CooldownSeconds,
	)
	if err != nil {
		return nil, err
	}

	e.Condition, err = domain.ParseCondition(cond)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorrupted, err)
	}
	return &e, nil
}

func scanBadge(row pgx.Row) (*domain.Badge, error) {
	var b domain.Badge
	err := row.Scan(
		&b.ProjectID, &b.ID, &b.Slug, &b.Name, &b.Emoji, &b.Description,
		&b.RequiredCredit, &b.RequiredNodes,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
