// Package graphload reads a project's graph definition from YAML and writes
// it to the store in one transaction.
package graphload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

// Definition is the YAML layout of a graph file.
type Definition struct {
	Project string     `yaml:"project"`
	Nodes   []NodeDef  `yaml:"nodes"`
	Edges   []EdgeDef  `yaml:"edges"`
	Badges  []BadgeDef `yaml:"badges"`
}

// NodeDef describes one node.
type NodeDef struct {
	ID             int64    `yaml:"id"`
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	Content        string   `yaml:"content"`
	MediaURL       string   `yaml:"media_url"`
	Parent         *int64   `yaml:"parent"`
	RequiredCredit int64    `yaml:"required_credit"`
	RequiredBadges []string `yaml:"required_badges"`
	Root           bool     `yaml:"root"`
	Checkpoint     bool     `yaml:"checkpoint"`
}

// EdgeDef describes one edge. Condition is written inline, e.g.
// {op: min_credit, val: 30} or {op: has_badge, slug: explorer}.
type EdgeDef struct {
	ID        int64          `yaml:"id"`
	From      int64          `yaml:"from"`
	To        int64          `yaml:"to"`
	Text      string         `yaml:"text"`
	Order     int            `yaml:"order"`
	Credit    int64          `yaml:"credit"`
	Cooldown  int            `yaml:"cooldown_seconds"`
	Condition map[string]any `yaml:"condition"`
}

// BadgeDef describes one badge.
type BadgeDef struct {
	ID             int64   `yaml:"id"`
	Slug           string  `yaml:"slug"`
	Name           string  `yaml:"name"`
	Emoji          string  `yaml:"emoji"`
	Description    string  `yaml:"description"`
	RequiredCredit int64   `yaml:"required_credit"`
	RequiredNodes  []int64 `yaml:"required_nodes"`
}

// Parse decodes and validates a graph file.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("graph definition: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("graph definition: %w", err)
	}
	return &def, nil
}

func (d *Definition) validate() error {
	if strings.TrimSpace(d.Project) == "" {
		return errors.New("project is required")
	}
	if len(d.Nodes) == 0 {
		return errors.New("no nodes defined")
	}

	nodes := make(map[int64]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID <= 0 {
			return fmt.Errorf("node id must be positive (got %d)", n.ID)
		}
		if nodes[n.ID] {
			return fmt.Errorf("duplicate node %d", n.ID)
		}
		if strings.TrimSpace(n.Title) == "" {
			return fmt.Errorf("node %d: title is required", n.ID)
		}
		nodes[n.ID] = true
	}
	for _, n := range d.Nodes {
		if n.Parent != nil && !nodes[*n.Parent] {
			return fmt.Errorf("node %d: unknown parent %d", n.ID, *n.Parent)
		}
	}

	slugs := make(map[string]bool, len(d.Badges))
	badgeIDs := make(map[int64]bool, len(d.Badges))
	for _, b := range d.Badges {
		if b.ID <= 0 {
			return fmt.Errorf("badge id must be positive (got %d)", b.ID)
		}
		if badgeIDs[b.ID] {
			return fmt.Errorf("duplicate badge %d", b.ID)
		}
		if b.Slug == "" {
			return fmt.Errorf("badge %d: slug is required", b.ID)
		}
		if slugs[b.Slug] {
			return fmt.Errorf("duplicate badge slug %q", b.Slug)
		}
		if b.RequiredCredit < 0 {
			return fmt.Errorf("badge %s: required_credit must be >= 0", b.Slug)
		}
		for _, id := range b.RequiredNodes {
			if !nodes[id] {
				return fmt.Errorf("badge %s: unknown required node %d", b.Slug, id)
			}
		}
		badgeIDs[b.ID] = true
		slugs[b.Slug] = true
	}

	edges := make(map[int64]bool, len(d.Edges))
	for _, e := range d.Edges {
		if e.ID <= 0 {
			return fmt.Errorf("edge id must be positive (got %d)", e.ID)
		}
		if edges[e.ID] {
			return fmt.Errorf("duplicate edge %d", e.ID)
		}
		if !nodes[e.From] || !nodes[e.To] {
			return fmt.Errorf("edge %d: endpoints %d -> %d must be defined nodes", e.ID, e.From, e.To)
		}
		if e.Credit < 0 {
			return fmt.Errorf("edge %d: credit must be >= 0", e.ID)
		}
		if e.Cooldown < 0 {
			return fmt.Errorf("edge %d: cooldown_seconds must be >= 0", e.ID)
		}
		if _, err := e.condition(); err != nil {
			return fmt.Errorf("edge %d: %w", e.ID, err)
		}
		edges[e.ID] = true
	}
	return nil
}

func (e EdgeDef) condition() (domain.Condition, error) {
	if len(e.Condition) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(e.Condition)
	if err != nil {
		return nil, fmt.Errorf("condition: %w", err)
	}
	return domain.ParseCondition(raw)
}

// UnknownBadgeRefs lists has_badge slugs that name no badge in the file.
// Such conditions are satisfied at traversal time, so they are reported
// rather than rejected.
func (d *Definition) UnknownBadgeRefs() []string {
	slugs := make(map[string]bool, len(d.Badges))
	for _, b := range d.Badges {
		slugs[b.Slug] = true
	}
	var unknown []string
	for _, e := range d.Edges {
		c, _ := e.condition()
		if hb, ok := c.(domain.HasBadge); ok && !slugs[hb.Slug] {
			unknown = append(unknown, hb.Slug)
		}
	}
	return unknown
}

// toDomain converts the definition for projectID.
func (d *Definition) toDomain(projectID uuid.UUID) ([]domain.Node, []domain.Edge, []domain.Badge, error) {
	nodes := make([]domain.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, domain.Node{
			ID:             n.ID,
			ProjectID:      projectID,
			Title:          n.Title,
			Description:    n.Description,
			ContentText:    n.Content,
			MediaURL:       n.MediaURL,
			ParentNodeID:   n.Parent,
			RequiredCredit: n.RequiredCredit,
			RequiredBadges: n.RequiredBadges,
			IsRoot:         n.Root,
			IsCheckpoint:   n.Checkpoint,
		})
	}

	edges := make([]domain.Edge, 0, len(d.Edges))
	for _, e := range d.Edges {
		cond, err := e.condition()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("edge %d: %w", e.ID, err)
		}
		edges = append(edges, domain.Edge{
			ID:              e.ID,
			ProjectID:       projectID,
			FromNodeID:      e.From,
			ToNodeID:        e.To,
			ChoiceText:      e.Text,
			ChoiceOrder:     e.Order,
			CreditGain:      e.Credit,
			CooldownSeconds: e.Cooldown,
			Condition:       cond,
		})
	}

	badges := make([]domain.Badge, 0, len(d.Badges))
	for _, b := range d.Badges {
		badges = append(badges, domain.Badge{
			ID:             b.ID,
			ProjectID:      projectID,
			Slug:           b.Slug,
			Name:           b.Name,
			Emoji:          b.Emoji,
			Description:    b.Description,
			RequiredCredit: b.RequiredCredit,
			RequiredNodes:  b.RequiredNodes,
		})
	}
	return nodes, edges, badges, nil
}
