package traversal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressRepo interface {
	Get(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error)
	GetForUpdate(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error)
	CreateIfAbsent(ctx context.Context, p domain.Progress) (*domain.Progress, bool, error)
	UpdatePosition(ctx context.Context, key domain.ProgressKey, upd domain.PositionUpdate) (*domain.Progress, error)
	Leaderboard(ctx context.Context, communityID int64, projectID uuid.UUID, limit int) ([]domain.LeaderboardEntry, error)
}

type graphRepo interface {
	GetNode(ctx context.Context, projectID uuid.UUID, nodeID int64) (*domain.Node, error)
	GetEdge(ctx context.Context, projectID uuid.UUID, edgeID int64) (*domain.Edge, error)
	ListEdgesFrom(ctx context.Context, projectID uuid.UUID, nodeID int64) ([]domain.Edge, error)
	GetBadgeBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*domain.Badge, error)
	ListBadgesUpToCredit(ctx context.Context, projectID uuid.UUID, credit int64) ([]domain.Badge, error)
}

type grantRepo interface {
	Create(ctx context.Context, g domain.BadgeGrant) (bool, error)
	Exists(ctx context.Context, key domain.ProgressKey, badgeID int64) (bool, error)
	GrantedBadgeIDs(ctx context.Context, key domain.ProgressKey) (map[int64]struct{}, error)
	ListByKey(ctx context.Context, key domain.ProgressKey) ([]domain.GrantedBadge, error)
}

type kvCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type journalCodec interface {
	Encode(j domain.Journal) ([]byte, error)
	Decode(sealed []byte) (domain.Journal, error)
}

type projectResolver interface {
	ProjectBySlug(slug string) (domain.Project, bool)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the engine settings the service needs.
type Config struct {
	DefaultProject         string
	DefaultPath            string
	StateTTL               time.Duration
	UnknownConditionPolicy domain.UnknownConditionPolicy
	OperationTimeout       time.Duration
	LeaderboardMax         int
}

// Service implements the graph traversal engine.
type Service struct {
	progress progressRepo
	graph    graphRepo
	grants   grantRepo
	cache    kvCache
	codec    journalCodec
	projects projectResolver
	tx       txManager
	log      *slog.Logger
	cfg      Config

	// misses collapses concurrent cache misses for the same learner into one
	// store read.
	misses singleflight.Group
	now    func() time.Time
}

// NewService creates a new traversal Service.
func NewService(
	log *slog.Logger,
	progress progressRepo,
	graph graphRepo,
	grants grantRepo,
	cache kvCache,
	codec journalCodec,
	projects projectResolver,
	tx txManager,
	cfg Config,
) (*Service, error) {
	if cfg.UnknownConditionPolicy == "" {
		cfg.UnknownConditionPolicy = domain.DefaultUnknownConditionPolicy
	}
	if !cfg.UnknownConditionPolicy.IsValid() {
		return nil, fmt.Errorf("invalid unknown condition policy %q", cfg.UnknownConditionPolicy)
	}
	if cfg.StateTTL <= 0 {
		return nil, fmt.Errorf("state TTL must be positive (got %v)", cfg.StateTTL)
	}
	if cfg.DefaultProject == "" || cfg.DefaultPath == "" {
		return nil, fmt.Errorf("default project and path are required")
	}
	if cfg.LeaderboardMax <= 0 {
		cfg.LeaderboardMax = defaultLeaderboardLimit
	}

	return &Service{
		progress: progress,
		graph:    graph,
		grants:   grants,
		cache:    cache,
		codec:    codec,
		projects: projects,
		tx:       tx,
		log:      log.With("service", "traversal"),
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// withTimeout bounds one public operation.
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.OperationTimeout)
}

// detach returns a context that keeps ctx's values but not its cancellation,
// bounded by the operation timeout.
func (s *Service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return s.withTimeout(context.WithoutCancel(ctx))
}

func (s *Service) markerTTL() time.Duration {
	return max(invalidationMarkerTTL, 2*s.cfg.OperationTimeout)
}

// resolve maps a learner reference to its project and progress key.
func (s *Service) resolve(ref Learner) (domain.Project, domain.ProgressKey, error) {
	slug := ref.Project
	if slug == "" {
		slug = s.cfg.DefaultProject
	}
	project, ok := s.projects.ProjectBySlug(slug)
	if !ok {
		return domain.Project{}, domain.ProgressKey{}, fmt.Errorf("project %q: %w", slug, domain.ErrNotFound)
	}
	return project, domain.ProgressKey{
		UserID:      ref.UserID,
		CommunityID: ref.CommunityID,
		ProjectID:   project.ID,
	}, nil
}

func stateCacheKey(key domain.ProgressKey) string {
	return "state:" + key.String()
}

func invalidationMarkerKey(key domain.ProgressKey) string {
	return "invalidated:" + key.String()
}

// cooldownKey scopes a marker to the person, the project and the edge. A
// cooldown follows the user across communities.
func cooldownKey(key domain.ProgressKey, edgeID int64) string {
	return "cooldown:" + strconv.FormatInt(key.UserID, 10) + ":" + key.ProjectID.String() + ":" + strconv.FormatInt(edgeID, 10)
}

func logAttrs(key domain.ProgressKey) []any {
	return []any{
		slog.Int64("user_id", key.UserID),
		slog.Int64("community_id", key.CommunityID),
		slog.String("project_id", key.ProjectID.String()),
	}
}
