package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// Graph is the fixture created by SeedGraph:
//
//	1 (root) --e12 +25--> 2 --e23 +10 [min_credit 30]--> 3
//	                      2 --e24 +5  [has_badge first-steps, 60s cooldown]--> 4
//
// Badges: first-steps (20 credit), explorer (30 credit, requires node 3).
type Graph struct {
	ProjectID uuid.UUID
	Nodes     []domain.Node
	Edges     []domain.Edge
	Badges    []domain.Badge
}

// Edge returns the fixture edge with id.
func (g Graph) Edge(id int64) domain.Edge {
	for _, e := range g.Edges {
		if e.ID == id {
			return e
		}
	}
	panic("testhelper: unknown edge")
}

// SeedGraph creates the fixture graph under a fresh project id.
func SeedGraph(t *testing.T, pool *pgxpool.Pool) Graph {
	t.Helper()
	ctx := context.Background()

	projectID := uuid.New()
	one := int64(1)
	two := int64(2)

	g := Graph{
		ProjectID: projectID,
		Nodes: []domain.Node{
			{ID: 1, ProjectID: projectID, Title: "Welcome", IsRoot: true, RequiredBadges: []string{}},
			{ID: 2, ProjectID: projectID, Title: "Basics", ParentNodeID: &one, RequiredBadges: []string{}},
			{ID: 3, ProjectID: projectID, Title: "Deep dive", ParentNodeID: &two, RequiredCredit: 30, RequiredBadges: []string{}, IsCheckpoint: true},
			{ID: 4, ProjectID: projectID, Title: "Side quest", ParentNodeID: &two, RequiredBadges: []string{"first-steps"}},
		},
		Edges: []domain.Edge{
			{ID: 12, ProjectID: projectID, FromNodeID: 1, ToNodeID: 2, ChoiceText: "Start", ChoiceOrder: 1, CreditGain: 25},
			{ID: 23, ProjectID: projectID, FromNodeID: 2, ToNodeID: 3, ChoiceText: "Go deeper", ChoiceOrder: 1, CreditGain: 10,
				Condition: domain.MinCredit{Value: 30}},
			{ID: 24, ProjectID: projectID, FromNodeID: 2, ToNodeID: 4, ChoiceText: "Detour", ChoiceOrder: 2, CreditGain: 5,
				CooldownSeconds: 60, Condition: domain.HasBadge{Slug: "first-steps"}},
		},
		Badges: []domain.Badge{
			{ID: 1, ProjectID: projectID, Slug: "first-steps", Name: "First Steps", Emoji: "👣", RequiredCredit: 20, RequiredNodes: []int64{}},
			{ID: 2, ProjectID: projectID, Slug: "explorer", Name: "Explorer", Emoji: "🧭", RequiredCredit: 30, RequiredNodes: []int64{3}},
		},
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("testhelper: SeedGraph begin: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, n := range g.Nodes {
		_, err := tx.Exec(ctx,
			`INSERT INTO nodes (project_id, node_id, title, parent_node_id, required_credit, required_badges, is_root, is_checkpoint)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			n.ProjectID, n.ID, n.Title, n.ParentNodeID, n.RequiredCredit, n.RequiredBadges, n.IsRoot, n.IsCheckpoint,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedGraph insert node %d: %v", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		cond, err := domain.MarshalCondition(e.Condition)
		if err != nil {
			t.Fatalf("testhelper: SeedGraph marshal condition: %v", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO edges (project_id, edge_id, from_node_id, to_node_id, choice_text, choice_order, condition, credit_gain, cooldown_seconds)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ProjectID, e.ID, e.FromNodeID, e.ToNodeID, e.ChoiceText, e.ChoiceOrder, cond, e.CreditGain, e.CooldownSeconds,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedGraph insert edge %d: %v", e.ID, err)
		}
	}

	for _, b := range g.Badges {
		_, err := tx.Exec(ctx,
			`INSERT INTO badges (project_id, badge_id, slug, name, emoji, required_credit, required_nodes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ProjectID, b.ID, b.Slug, b.Name, b.Emoji, b.RequiredCredit, b.RequiredNodes,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedGraph insert badge %d: %v", b.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("testhelper: SeedGraph commit: %v", err)
	}

	return g
}

// NewKey returns a progress key with random user and community ids.
func NewKey(projectID uuid.UUID) domain.ProgressKey {
	return domain.ProgressKey{
		UserID:      rand.Int64N(1 << 40),
		CommunityID: -rand.Int64N(1 << 40),
		ProjectID:   projectID,
	}
}

// SeedProgress creates a progress row for key at nodeID.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, key domain.ProgressKey, nodeID, credit int64, journal []byte) domain.Progress {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if journal == nil {
		journal = []byte{}
	}
	p := domain.Progress{
		Key:              key,
		CurrentNodeID:    nodeID,
		CreditTotal:      credit,
		EncryptedJournal: journal,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO user_progress (user_id, community_id, project_id, current_node_id, credit_total, encrypted_journal, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		key.UserID, key.CommunityID, key.ProjectID, p.CurrentNodeID, p.CreditTotal, p.EncryptedJournal, p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProgress: %v", err)
	}

	return p
}

// SeedGrant records that key holds badgeID.
func SeedGrant(t *testing.T, pool *pgxpool.Pool, key domain.ProgressKey, badgeID int64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO badge_grants (user_id, community_id, project_id, badge_id, granted_at)
		 VALUES ($1, $2, $3, $4, now())`,
		key.UserID, key.CommunityID, key.ProjectID, badgeID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGrant: %v", err)
	}
}
