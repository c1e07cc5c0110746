package config

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/pathgraph/internal/auth"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Codec.validate(); err != nil {
		return fmt.Errorf("codec: %w", err)
	}

	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if c.Cache.StateTTL <= 0 {
		return fmt.Errorf("cache.state_ttl must be > 0 (got %v)", c.Cache.StateTTL)
	}

	if len(c.Projects) == 0 {
		return fmt.Errorf("at least one project must be configured")
	}

	seen := make(map[uuid.UUID]string, len(c.Projects))
	for _, slug := range c.projectSlugs() {
		p := c.Projects[slug]
		if err := p.validate(c.Engine.DefaultPath); err != nil {
			return fmt.Errorf("projects.%s: %w", slug, err)
		}
		if other, ok := seen[p.ID]; ok {
			return fmt.Errorf("projects.%s: id %s already used by %s", slug, p.ID, other)
		}
		seen[p.ID] = slug
		c.Projects[slug] = p
	}

	if _, ok := c.Projects[c.Engine.DefaultProject]; !ok {
		return fmt.Errorf("engine.default_project %q is not configured", c.Engine.DefaultProject)
	}

	return nil
}

func (c *Config) projectSlugs() []string {
	slugs := make([]string, 0, len(c.Projects))
	for slug := range c.Projects {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func (c *CodecConfig) validate() error {
	key, err := hex.DecodeString(c.JournalKey)
	if err != nil {
		return fmt.Errorf("journal_key must be hex: %w", err)
	}
	if len(key) != 32 {
		return fmt.Errorf("journal_key must decode to 32 bytes (got %d)", len(key))
	}
	c.Key = key
	return nil
}

func (a *APIConfig) validate() error {
	if a.TraverseRatePerMin < 0 {
		return fmt.Errorf("traverse_rate_per_min must be >= 0 (got %d)", a.TraverseRatePerMin)
	}
	if a.TokenSecret == "" {
		return nil
	}
	if len(a.TokenSecret) < auth.MinSecretLen {
		return fmt.Errorf("token_secret must be at least %d characters", auth.MinSecretLen)
	}
	if a.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be > 0 (got %v)", a.TokenTTL)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if !domain.UnknownConditionPolicy(e.UnknownConditionPolicy).IsValid() {
		return fmt.Errorf("unknown_condition_policy must be allow or deny (got %q)", e.UnknownConditionPolicy)
	}
	if e.OperationTimeout <= 0 {
		return fmt.Errorf("operation_timeout must be > 0 (got %v)", e.OperationTimeout)
	}
	if e.LeaderboardMax <= 0 {
		return fmt.Errorf("leaderboard_max must be > 0 (got %d)", e.LeaderboardMax)
	}
	return nil
}

func (p *ProjectConfig) validate(defaultPath string) error {
	id, err := uuid.Parse(p.IDRaw)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if id == uuid.Nil {
		return fmt.Errorf("id must not be nil uuid")
	}
	p.ID = id

	root, ok := p.RootNodes[defaultPath]
	if !ok {
		return fmt.Errorf("root_nodes must define the default path %q", defaultPath)
	}
	if root <= 0 {
		return fmt.Errorf("root_nodes.%s must be > 0 (got %d)", defaultPath, root)
	}
	return nil
}

// ProjectBySlug returns the domain project for slug.
func (c *Config) ProjectBySlug(slug string) (domain.Project, bool) {
	p, ok := c.Projects[slug]
	if !ok {
		return domain.Project{}, false
	}
	return domain.Project{
		ID:        p.ID,
		Slug:      slug,
		Name:      p.Name,
		RootNodes: p.RootNodes,
	}, true
}

// DomainProjects returns every configured project.
func (c *Config) DomainProjects() []domain.Project {
	out := make([]domain.Project, 0, len(c.Projects))
	for _, slug := range c.projectSlugs() {
		p, _ := c.ProjectBySlug(slug)
		out = append(out, p)
	}
	return out
}
