package rest

import (
	"time"

	"github.com/heartmarshall/pathgraph/internal/domain"
	"github.com/heartmarshall/pathgraph/internal/service/traversal"
)

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields"`
}

func toValidationResponse(ve *domain.ValidationError) validationResponse {
	fields := make([]fieldErrorResponse, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fieldErrorResponse(fe))
	}
	return validationResponse{Error: "validation failed", Fields: fields}
}

type stateResponse struct {
	UserID      int64  `json:"user_id"`
	CommunityID int64  `json:"community_id"`
	Project     string `json:"project"`
	NodeID      int64  `json:"node_id"`
	CreditTotal int64  `json:"credit_total"`
	Version     int64  `json:"version"`
}

type nodeResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ContentText  string `json:"content_text,omitempty"`
	MediaURL     string `json:"media_url,omitempty"`
	IsCheckpoint bool   `json:"is_checkpoint"`
}

type optionResponse struct {
	EdgeID   int64  `json:"edge_id"`
	ToNodeID int64  `json:"to_node_id"`
	Text     string `json:"text"`
	Locked   bool   `json:"locked"`
	Reason   string `json:"reason,omitempty"`
	Cooldown int    `json:"cooldown_seconds,omitempty"`
}

type optionsResponse struct {
	Node        nodeResponse     `json:"node"`
	CreditTotal int64            `json:"credit_total"`
	Options     []optionResponse `json:"options"`
}

type badgeResponse struct {
	Slug      string     `json:"slug"`
	Name      string     `json:"name"`
	Emoji     string     `json:"emoji,omitempty"`
	GrantedAt *time.Time `json:"granted_at,omitempty"`
}

type eventResponse struct {
	EdgeID     int64     `json:"edge_id"`
	From       int64     `json:"from"`
	To         int64     `json:"to"`
	At         time.Time `json:"at"`
	CreditGain int64     `json:"credit_gain"`
}

type profileResponse struct {
	Node        nodeResponse      `json:"node"`
	CreditTotal int64             `json:"credit_total"`
	Badges      []badgeResponse   `json:"badges"`
	History     []eventResponse   `json:"history"`
	Preferences map[string]string `json:"preferences"`
}

type traverseResponse struct {
	OK          bool            `json:"ok"`
	Reason      string          `json:"reason,omitempty"`
	Code        string          `json:"code,omitempty"`
	NodeID      int64           `json:"node_id,omitempty"`
	CreditTotal int64           `json:"credit_total,omitempty"`
	Badges      []badgeResponse `json:"badges,omitempty"`
}

type leaderboardEntryResponse struct {
	Rank        int   `json:"rank"`
	UserID      int64 `json:"user_id"`
	CreditTotal int64 `json:"credit_total"`
	NodeID      int64 `json:"node_id"`
}

type leaderboardResponse struct {
	Entries []leaderboardEntryResponse `json:"entries"`
}

func toStateResponse(l traversal.Learner, p *domain.Progress) stateResponse {
	return stateResponse{
		UserID:      p.Key.UserID,
		CommunityID: p.Key.CommunityID,
		Project:     l.Project,
		NodeID:      p.CurrentNodeID,
		CreditTotal: p.CreditTotal,
		Version:     p.Version,
	}
}

func toNodeResponse(n domain.Node) nodeResponse {
	return nodeResponse{
		ID:           n.ID,
		Title:        n.Title,
		Description:  n.Description,
		ContentText:  n.ContentText,
		MediaURL:     n.MediaURL,
		IsCheckpoint: n.IsCheckpoint,
	}
}

func toOptionsResponse(res *traversal.OptionsResult) optionsResponse {
	opts := make([]optionResponse, 0, len(res.Options))
	for _, o := range res.Options {
		opts = append(opts, optionResponse{
			EdgeID:   o.Edge.ID,
			ToNodeID: o.Edge.ToNodeID,
			Text:     o.Edge.ChoiceText,
			Locked:   o.Locked,
			Reason:   o.Reason,
			Cooldown: o.Edge.CooldownSeconds,
		})
	}
	return optionsResponse{
		Node:        toNodeResponse(res.Node),
		CreditTotal: res.Progress.CreditTotal,
		Options:     opts,
	}
}

func toProfileResponse(res *traversal.ProfileResult) profileResponse {
	badges := make([]badgeResponse, 0, len(res.Badges))
	for _, b := range res.Badges {
		grantedAt := b.GrantedAt
		badges = append(badges, badgeResponse{Slug: b.Slug, Name: b.Name, Emoji: b.Emoji, GrantedAt: &grantedAt})
	}
	history := make([]eventResponse, 0, len(res.Journal.Events))
	for _, ev := range res.Journal.Events {
		history = append(history, eventResponse(ev))
	}
	prefs := res.Journal.Preferences
	if prefs == nil {
		prefs = map[string]string{}
	}
	return profileResponse{
		Node:        toNodeResponse(res.Node),
		CreditTotal: res.Progress.CreditTotal,
		Badges:      badges,
		History:     history,
		Preferences: prefs,
	}
}

func toTraverseResponse(res *traversal.TraverseResult) traverseResponse {
	if !res.Accepted() {
		return traverseResponse{
			OK:     false,
			Reason: res.Rejection.Reason,
			Code:   string(res.Rejection.Code),
		}
	}
	badges := make([]badgeResponse, 0, len(res.GrantedBadges))
	for _, b := range res.GrantedBadges {
		badges = append(badges, badgeResponse{Slug: b.Slug, Name: b.Name, Emoji: b.Emoji})
	}
	return traverseResponse{
		OK:          true,
		NodeID:      res.NodeID,
		CreditTotal: res.CreditTotal,
		Badges:      badges,
	}
}

func toLeaderboardResponse(entries []domain.LeaderboardEntry) leaderboardResponse {
	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			Rank:        e.Rank,
			UserID:      e.UserID,
			CreditTotal: e.CreditTotal,
			NodeID:      e.CurrentNodeID,
		})
	}
	return leaderboardResponse{Entries: out}
}
