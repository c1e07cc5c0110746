package graphload

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

type graphWriter interface {
	UpsertNodes(ctx context.Context, nodes []domain.Node) error
	UpsertEdges(ctx context.Context, edges []domain.Edge) error
	UpsertBadges(ctx context.Context, badges []domain.Badge) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type projectResolver interface {
	ProjectBySlug(slug string) (domain.Project, bool)
}

// Stats counts what a load wrote.
type Stats struct {
	Nodes  int
	Edges  int
	Badges int
}

// Loader writes graph definitions to the store.
type Loader struct {
	log      *slog.Logger
	repo     graphWriter
	tx       txManager
	projects projectResolver
}

// NewLoader creates a Loader.
func NewLoader(log *slog.Logger, repo graphWriter, tx txManager, projects projectResolver) *Loader {
	return &Loader{
		log:      log.With("component", "graphload"),
		repo:     repo,
		tx:       tx,
		projects: projects,
	}
}

// LoadFile reads, validates and loads the graph file at path.
func (l *Loader) LoadFile(ctx context.Context, path string, dryRun bool) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read graph file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return Stats{}, err
	}
	return l.Load(ctx, def, dryRun)
}

// Load upserts every node, edge and badge of def in one transaction. Nodes
// go first; edge endpoints are checked against them when the transaction
// commits. With dryRun set nothing is written.
func (l *Loader) Load(ctx context.Context, def *Definition, dryRun bool) (Stats, error) {
	project, ok := l.projects.ProjectBySlug(def.Project)
	if !ok {
		return Stats{}, fmt.Errorf("project %q: %w", def.Project, domain.ErrNotFound)
	}

	defined := make(map[int64]bool, len(def.Nodes))
	for _, n := range def.Nodes {
		defined[n.ID] = true
	}
	for path, root := range project.RootNodes {
		if !defined[root] {
			return Stats{}, fmt.Errorf("project %s: root node %d of path %q is not defined in the graph file", project.Slug, root, path)
		}
	}

	for _, slug := range def.UnknownBadgeRefs() {
		l.log.WarnContext(ctx, "has_badge condition names an undefined badge and will always pass",
			slog.String("project", project.Slug), slog.String("slug", slug))
	}

	nodes, edges, badges, err := def.toDomain(project.ID)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Nodes: len(nodes), Edges: len(edges), Badges: len(badges)}

	if dryRun {
		l.log.InfoContext(ctx, "graph validated (dry run)", statsAttrs(project, stats)...)
		return stats, nil
	}

	err = l.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := l.repo.UpsertNodes(ctx, nodes); err != nil {
			return fmt.Errorf("upsert nodes: %w", err)
		}
		if err := l.repo.UpsertBadges(ctx, badges); err != nil {
			return fmt.Errorf("upsert badges: %w", err)
		}
		if err := l.repo.UpsertEdges(ctx, edges); err != nil {
			return fmt.Errorf("upsert edges: %w", err)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	l.log.InfoContext(ctx, "graph loaded", statsAttrs(project, stats)...)
	return stats, nil
}

func statsAttrs(p domain.Project, s Stats) []any {
	return []any{
		slog.String("project", p.Slug),
		slog.Int("nodes", s.Nodes),
		slog.Int("edges", s.Edges),
		slog.Int("badges", s.Badges),
	}
}
