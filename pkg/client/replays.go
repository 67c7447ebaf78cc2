package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rlreplays/ballchasing-client/pkg/pagination"
	"github.com/rlreplays/ballchasing-client/pkg/params"
)

// ListReplays returns a lazy iterator over at most count replays matching
// the filter. The filter is validated before any request is made; at least
// one of PlayerName or PlayerID is required.
func (c *Client) ListReplays(filter params.ReplayFilter, count int) (*pagination.Iterator, error) {
	query, err := filter.Values()
	if err != nil {
		return nil, err
	}
	return pagination.New(c, c.baseURL+"/replays", query, count), nil
}

// FetchPage implements pagination.PageFetcher. Listing pages are never
// cached; consuming a page advances the server-side cursor.
func (c *Client) FetchPage(ctx context.Context, target string, query url.Values) (*pagination.Page, error) {
	body, err := c.call(ctx, request{method: http.MethodGet, target: target, query: query}, false)
	if err != nil {
		return nil, err
	}

	var page pagination.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}
	return &page, nil
}

// GetReplay returns the full replay metadata document. The document shape
// varies with the replay's processing status, so it is returned raw.
func (c *Client) GetReplay(ctx context.Context, replayID string) (json.RawMessage, error) {
	target := c.baseURL + "/replays/" + url.PathEscape(replayID)
	return c.call(ctx, request{method: http.MethodGet, target: target}, true)
}

// DeleteReplay permanently removes an uploaded replay.
func (c *Client) DeleteReplay(ctx context.Context, replayID string) error {
	target := c.baseURL + "/replays/" + url.PathEscape(replayID)
	_, err := c.call(ctx, request{method: http.MethodDelete, target: target}, false)
	return err
}

// ReplayPatch describes a partial update to a replay. Empty fields are left
// unchanged.
type ReplayPatch struct {
	Title      string `json:"title,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	Group      string `json:"group,omitempty"`
}

// PatchReplay updates a replay's title, visibility or group assignment.
func (c *Client) PatchReplay(ctx context.Context, replayID string, patch ReplayPatch) error {
	if err := params.CheckVisibility(patch.Visibility); err != nil {
		return err
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal replay patch: %w", err)
	}

	target := c.baseURL + "/replays/" + url.PathEscape(replayID)
	_, err = c.call(ctx, request{
		method:      http.MethodPatch,
		target:      target,
		body:        body,
		contentType: "application/json",
	}, false)
	return err
}

// DownloadReplay fetches the original .replay file and writes it to path.
func (c *Client) DownloadReplay(ctx context.Context, replayID, path string) error {
	target := c.baseURL + "/replays/" + url.PathEscape(replayID) + "/file"
	body, err := c.call(ctx, request{method: http.MethodGet, target: target}, false)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write replay file: %w", err)
	}
	return nil
}

// UploadResult is the response of a successful replay upload.
type UploadResult struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

// UploadReplay uploads a local .replay file with the given visibility and,
// optionally, assigns it to a group. A duplicate upload comes back as a
// *RequestError with status 409 and detail "duplicate replay".
func (c *Client) UploadReplay(ctx context.Context, path, visibility, group string) (*UploadResult, error) {
	if err := params.CheckVisibility(visibility); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	query := url.Values{}
	if visibility != "" {
		query.Set("visibility", visibility)
	}
	if group != "" {
		query.Set("group", group)
	}

	body, err := c.call(ctx, request{
		method:      http.MethodPost,
		target:      c.baseURL + "/v2/upload",
		query:       query,
		body:        buf.Bytes(),
		contentType: form.FormDataContentType(),
	}, false)
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}
	return &result, nil
}
