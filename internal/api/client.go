// Package api is the sync façade over the companion API: it turns
// local intents into authenticated requests and normalizes every
// outcome, success or failure, into a Result. Nothing in here throws
// past the boundary and nothing in here holds state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/internal/security"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

const errNotAuthenticated = "Not authenticated"

// Result is the uniform outcome of every remote call. On success,
// Data is the server's payload unchanged; on failure, Error carries
// the server-reported message when one exists, else a generic string.
// A remote rejection and a transport failure are indistinguishable
// here on purpose.
type Result struct {
	Success bool
	Data    json.RawMessage
	Error   string
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// TokenSource supplies the current session bearer token, "" when no
// session is active.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	now     func() time.Time
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
		now:     time.Now,
	}
}

// envelope is the companion API response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) Result {
	token := c.token()
	if !security.TokenUsable(token, c.now()) {
		return failure(errNotAuthenticated)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return failure(fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failure(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("Remote call failed", "method", method, "path", path, "error", err)
		return failure(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err.Error())
	}

	var env envelope
	decodable := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodable && env.Error != nil && env.Error.Message != "" {
			return failure(env.Error.Message)
		}
		return failure(fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}

	if !decodable {
		return failure("malformed server response")
	}
	if !env.Success {
		if env.Error != nil && env.Error.Message != "" {
			return failure(env.Error.Message)
		}
		return failure("request rejected")
	}

	return Result{Success: true, Data: env.Data}
}

func (c *Client) SendFriendRequest(ctx context.Context, target string) Result {
	return c.do(ctx, http.MethodPost, "/api/friends/request", map[string]string{"username": target})
}

func (c *Client) IncomingRequests(ctx context.Context) Result {
	return c.do(ctx, http.MethodGet, "/api/friends/requests", nil)
}

func (c *Client) AcceptRequest(ctx context.Context, id string) Result {
	return c.do(ctx, http.MethodPost, "/api/friends/requests/"+url.PathEscape(id)+"/accept", nil)
}

func (c *Client) RejectRequest(ctx context.Context, id string) Result {
	return c.do(ctx, http.MethodPost, "/api/friends/requests/"+url.PathEscape(id)+"/reject", nil)
}

func (c *Client) Friends(ctx context.Context) Result {
	return c.do(ctx, http.MethodGet, "/api/friends", nil)
}

func (c *Client) FriendshipStatus(ctx context.Context, username string) Result {
	return c.do(ctx, http.MethodGet, "/api/friends/status/"+url.PathEscape(username), nil)
}

func (c *Client) CreatePost(ctx context.Context, post models.Post) Result {
	return c.do(ctx, http.MethodPost, "/api/posts", post)
}

func (c *Client) LikePost(ctx context.Context, id string) Result {
	return c.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(id)+"/like", nil)
}

func (c *Client) FetchPosts(ctx context.Context, page, limit int) Result {
	query := url.Values{
		"page":  []string{strconv.Itoa(page)},
		"limit": []string{strconv.Itoa(limit)},
	}
	return c.do(ctx, http.MethodGet, "/api/posts?"+query.Encode(), nil)
}

func (c *Client) FetchProfile(ctx context.Context, userID string) Result {
	return c.do(ctx, http.MethodGet, "/api/profiles/"+url.PathEscape(userID), nil)
}

func (c *Client) UpdateProfile(ctx context.Context, patch models.ProfilePatch) Result {
	return c.do(ctx, http.MethodPut, "/api/profiles/me", patch)
}

func (c *Client) SearchUsers(ctx context.Context, query string) Result {
	values := url.Values{"q": []string{query}}
	return c.do(ctx, http.MethodGet, "/api/search?"+values.Encode(), nil)
}
