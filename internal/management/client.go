// Package management fetches the schema of a project from the content
// management API.
package management

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/kontentgen/pkg/types"
)

// DefaultBaseURL is the public management API endpoint.
const DefaultBaseURL = "https://manage.kontent.ai/v2"

const continuationHeader = "x-continuation"

// Client is a read-only management API client.
type Client struct {
	BaseURL    string
	ProjectID  string
	APIKey     string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// APIError is a non-2xx management API response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("management api error status %d: %s", e.StatusCode, e.Body)
}

var sleepFn = time.Sleep

const maxRetries = 3

// get performs one GET with retries on 429 and 5xx and returns the body and
// response headers of the successful attempt.
func (c *Client) get(ctx context.Context, path, continuation string) ([]byte, http.Header, error) {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	endpoint := strings.TrimRight(base, "/") + "/projects/" + c.ProjectID + path
	c.debug("management request", "url", endpoint, "continuation", continuation)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("Accept", "application/json")
		if c.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}
		if continuation != "" {
			req.Header.Set(continuationHeader, continuation)
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			lastErr = err
			if attempt < maxRetries {
				sleepFn(backoff(attempt))
				continue
			}
			return nil, nil, err
		}
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				sleepFn(backoff(attempt))
				continue
			}
			return nil, nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
			if attempt < maxRetries {
				wait := backoff(attempt)
				if resp.StatusCode == http.StatusTooManyRequests {
					if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
						if secs, err := strconv.Atoi(ra); err == nil {
							wait = time.Duration(secs) * time.Second
						}
					}
				}
				c.debug("management retry", "url", endpoint, "status", resp.StatusCode, "wait", wait)
				sleepFn(wait)
				continue
			}
			return nil, nil, lastErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}
		return data, resp.Header, nil
	}
	if lastErr == nil {
		lastErr = errors.New("management request failed")
	}
	return nil, nil, lastErr
}

func (c *Client) debug(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}

type pagination struct {
	ContinuationToken string `json:"continuation_token"`
}

// listAll follows continuation tokens until every page of path is read. key
// names the array in the response envelope; an empty key means the response
// body is the array itself.
func listAll[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	var (
		all   []T
		token string
	)
	for {
		data, header, err := c.get(ctx, path, token)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", path, err)
		}
		var page []T
		next := ""
		if key == "" {
			if err := json.Unmarshal(data, &page); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		} else {
			var envelope map[string]json.RawMessage
			if err := json.Unmarshal(data, &envelope); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
			if raw, ok := envelope[key]; ok {
				if err := json.Unmarshal(raw, &page); err != nil {
					return nil, fmt.Errorf("decode %s: %w", path, err)
				}
			}
			if raw, ok := envelope["pagination"]; ok {
				var p pagination
				if err := json.Unmarshal(raw, &p); err != nil {
					return nil, fmt.Errorf("decode %s pagination: %w", path, err)
				}
				next = p.ContinuationToken
			}
		}
		if next == "" {
			next = header.Get(continuationHeader)
		}
		all = append(all, page...)
		if next == "" || next == token {
			return all, nil
		}
		token = next
	}
}

func (c *Client) ProjectInfo(ctx context.Context) (*types.ProjectInfo, error) {
	data, _, err := c.get(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("project info: %w", err)
	}
	var info types.ProjectInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode project info: %w", err)
	}
	return &info, nil
}

func (c *Client) ListContentTypes(ctx context.Context) ([]types.ContentType, error) {
	return listAll[types.ContentType](ctx, c, "/types", "types")
}

func (c *Client) ListSnippets(ctx context.Context) ([]types.ContentTypeSnippet, error) {
	return listAll[types.ContentTypeSnippet](ctx, c, "/snippets", "snippets")
}

func (c *Client) ListTaxonomies(ctx context.Context) ([]types.TaxonomyGroup, error) {
	return listAll[types.TaxonomyGroup](ctx, c, "/taxonomies", "taxonomies")
}

func (c *Client) ListLanguages(ctx context.Context) ([]types.Language, error) {
	return listAll[types.Language](ctx, c, "/languages", "languages")
}

func (c *Client) ListCollections(ctx context.Context) ([]types.Collection, error) {
	return listAll[types.Collection](ctx, c, "/collections", "collections")
}

func (c *Client) ListWorkflows(ctx context.Context) ([]types.Workflow, error) {
	return listAll[types.Workflow](ctx, c, "/workflows", "")
}

func (c *Client) ListRoles(ctx context.Context) ([]types.Role, error) {
	return listAll[types.Role](ctx, c, "/roles", "roles")
}

func (c *Client) ListAssetFolders(ctx context.Context) ([]types.AssetFolder, error) {
	return listAll[types.AssetFolder](ctx, c, "/folders", "folders")
}

func (c *Client) ListWebhooks(ctx context.Context) ([]types.Webhook, error) {
	return listAll[types.Webhook](ctx, c, "/webhooks", "")
}

// FetchSnapshot reads the project, its schema and every facet enabled in
// export. Any failure aborts the whole fetch.
func (c *Client) FetchSnapshot(ctx context.Context, export types.ExportSettings) (*types.Snapshot, error) {
	if c.ProjectID == "" {
		return nil, errors.New("project id is required")
	}
	snap := &types.Snapshot{ProjectID: c.ProjectID}
	var err error
	if snap.Project, err = c.ProjectInfo(ctx); err != nil {
		return nil, err
	}
	if snap.Types, err = c.ListContentTypes(ctx); err != nil {
		return nil, err
	}
	if snap.Snippets, err = c.ListSnippets(ctx); err != nil {
		return nil, err
	}
	if snap.Taxonomies, err = c.ListTaxonomies(ctx); err != nil {
		return nil, err
	}
	if export.Languages {
		if snap.Languages, err = c.ListLanguages(ctx); err != nil {
			return nil, err
		}
	}
	if export.Collections {
		if snap.Collections, err = c.ListCollections(ctx); err != nil {
			return nil, err
		}
	}
	if export.Workflows {
		if snap.Workflows, err = c.ListWorkflows(ctx); err != nil {
			return nil, err
		}
	}
	if export.Roles {
		if snap.Roles, err = c.ListRoles(ctx); err != nil {
			return nil, err
		}
	}
	if export.AssetFolders {
		if snap.AssetFolders, err = c.ListAssetFolders(ctx); err != nil {
			return nil, err
		}
	}
	if export.Webhooks {
		if snap.Webhooks, err = c.ListWebhooks(ctx); err != nil {
			return nil, err
		}
	}
	snap.FetchedAt = time.Now().UTC()
	c.debug("snapshot fetched", "project", c.ProjectID,
		"types", len(snap.Types), "snippets", len(snap.Snippets), "taxonomies", len(snap.Taxonomies))
	return snap, nil
}

func backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Second << attempt
}
