package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rlreplays/ballchasing-client/pkg/pagination"
	"github.com/rlreplays/ballchasing-client/pkg/params"
)

// NewGroup describes a replay group to create.
type NewGroup struct {
	Name string `json:"name"`

	// PlayerIdentification controls how players are matched across the
	// group's replays: "by-id" or "by-name".
	PlayerIdentification string `json:"player_identification"`

	// TeamIdentification controls how teams are matched:
	// "by-distinct-players" or "by-player-clusters".
	TeamIdentification string `json:"team_identification"`

	// Parent nests the new group under an existing one.
	Parent string `json:"parent,omitempty"`
}

// CreateGroup creates a new replay group and returns the server's group
// document.
func (c *Client) CreateGroup(ctx context.Context, group NewGroup) (json.RawMessage, error) {
	if err := params.CheckPlayerIdentification(group.PlayerIdentification); err != nil {
		return nil, err
	}
	if err := params.CheckTeamIdentification(group.TeamIdentification); err != nil {
		return nil, err
	}

	body, err := json.Marshal(group)
	if err != nil {
		return nil, fmt.Errorf("marshal group: %w", err)
	}

	return c.call(ctx, request{
		method:      http.MethodPost,
		target:      c.baseURL + "/groups",
		body:        body,
		contentType: "application/json",
	}, false)
}

// GetGroup returns the full group document, including aggregated player
// stats once the group's replays are processed.
func (c *Client) GetGroup(ctx context.Context, groupID string) (json.RawMessage, error) {
	target := c.baseURL + "/groups/" + url.PathEscape(groupID)
	return c.call(ctx, request{method: http.MethodGet, target: target}, true)
}

// DeleteGroup permanently removes a group. Its replays are not deleted;
// they fall back to being ungrouped.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	target := c.baseURL + "/groups/" + url.PathEscape(groupID)
	_, err := c.call(ctx, request{method: http.MethodDelete, target: target}, false)
	return err
}

// GroupPatch describes a partial update to a group. Empty fields are left
// unchanged.
type GroupPatch struct {
	PlayerIdentification string `json:"player_identification,omitempty"`
	TeamIdentification   string `json:"team_identification,omitempty"`
	Shared               *bool  `json:"shared,omitempty"`
}

// PatchGroup updates a group's identification modes or shared flag.
func (c *Client) PatchGroup(ctx context.Context, groupID string, patch GroupPatch) error {
	if err := params.CheckPlayerIdentification(patch.PlayerIdentification); err != nil {
		return err
	}
	if err := params.CheckTeamIdentification(patch.TeamIdentification); err != nil {
		return err
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal group patch: %w", err)
	}

	target := c.baseURL + "/groups/" + url.PathEscape(groupID)
	_, err = c.call(ctx, request{
		method:      http.MethodPatch,
		target:      target,
		body:        body,
		contentType: "application/json",
	}, false)
	return err
}

// ListGroups returns a lazy iterator over at most count groups matching the
// filter.
func (c *Client) ListGroups(filter params.GroupFilter, count int) (*pagination.Iterator, error) {
	query, err := filter.Values()
	if err != nil {
		return nil, err
	}
	return pagination.New(c, c.baseURL+"/groups", query, count), nil
}
