// Package fightcade implements a minimal client for the unofficial Fightcade
// ranking API. All ranked queries go through a single POST endpoint with a
// "req" discriminator in the body.
package fightcade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/AndersSaints/FightcadeRank/internal/config"
)

const maxRetries = 3

var (
	ErrNotFound    = errors.New("player not found")
	ErrRateLimited = errors.New("rate limited by api")
	errRequest     = errors.New("api request failed")
	errDecode      = errors.New("failed to decode api response")
)

type Client struct {
	baseURL    string
	siteURL    string
	gameID     string
	headers    map[string]string
	errorDelay time.Duration
	httpClient *http.Client
	warmOnce   sync.Once
}

func New(conf config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.DefaultHTTPTimeout}
	}

	return &Client{
		baseURL:    conf.APIBaseURL,
		siteURL:    siteRoot(conf.APIBaseURL),
		gameID:     conf.GameID,
		headers:    conf.BrowserHeaders(),
		errorDelay: conf.ErrorDelay(),
		httpClient: httpClient,
	}
}

// GetUser checks that a username exists at all before any expensive ranking
// walk starts.
func (c *Client) GetUser(ctx context.Context, username string) (User, error) {
	resp, errResp := c.request(ctx, map[string]any{
		"req":      "getuser",
		"username": username,
	})
	if errResp != nil {
		return User{}, errResp
	}

	if resp.Res != "OK" {
		if strings.Contains(strings.ToLower(resp.Error), "rate") {
			return User{}, ErrRateLimited
		}

		return User{}, ErrNotFound
	}

	if resp.User == nil {
		return User{}, ErrNotFound
	}

	return *resp.User, nil
}

// SearchRankings fetches one page of the global leaderboard ordered by elo.
func (c *Client) SearchRankings(ctx context.Context, offset int, limit int) ([]Player, error) {
	resp, errResp := c.request(ctx, map[string]any{
		"req":    "searchrankings",
		"offset": offset,
		"limit":  limit,
		"gameid": c.gameID,
		"byElo":  true,
		"recent": true,
	})
	if errResp != nil {
		return nil, errResp
	}

	if resp.Res != "OK" {
		if strings.Contains(strings.ToLower(resp.Error), "rate") {
			return nil, ErrRateLimited
		}

		return nil, fmt.Errorf("%w: %s", errRequest, resp.Error)
	}

	if resp.Results == nil {
		return nil, nil
	}

	return resp.Results.Results, nil
}

// UserReplays fetches the most recent recorded matches for a user.
func (c *Client) UserReplays(ctx context.Context, username string, offset int, limit int) ([]Replay, error) {
	endpoint := fmt.Sprintf("%sget_user_replays/%s/%s?offset=%d&limit=%d",
		c.baseURL, username, c.gameID, offset, limit)

	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if errReq != nil {
		return nil, errors.Join(errReq, errRequest)
	}
	c.applyHeaders(req)

	resp, errResp := c.httpClient.Do(req)
	if errResp != nil {
		return nil, errors.Join(errResp, errRequest)
	}
	defer c.closeBody(resp)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errRequest, resp.StatusCode)
	}

	var replays replayResponse
	if err := json.NewDecoder(resp.Body).Decode(&replays); err != nil {
		return nil, errors.Join(err, errDecode)
	}

	return replays.Results, nil
}

// request posts a single API envelope with retries on transient failures.
// Rate limit responses are returned immediately so the caller can apply the
// much longer rate limit delay instead.
func (c *Client) request(ctx context.Context, body map[string]any) (apiResponse, error) {
	c.warmOnce.Do(func() {
		c.warmUp(ctx)
	})

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.errorDelay); err != nil {
				return apiResponse{}, err
			}
		}

		resp, errDo := c.post(ctx, body)
		if errDo != nil {
			if errors.Is(errDo, context.Canceled) || errors.Is(errDo, context.DeadlineExceeded) {
				return apiResponse{}, errDo
			}

			lastErr = errDo
			slog.Warn("Request attempt failed",
				slog.Int("attempt", attempt+1), slog.String("error", errDo.Error()))

			continue
		}

		return resp, nil
	}

	return apiResponse{}, errors.Join(lastErr, errRequest)
}

func (c *Client) post(ctx context.Context, body map[string]any) (apiResponse, error) {
	payload, errMarshal := json.Marshal(body)
	if errMarshal != nil {
		return apiResponse{}, errors.Join(errMarshal, errRequest)
	}

	req, errReq := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if errReq != nil {
		return apiResponse{}, errors.Join(errReq, errRequest)
	}
	c.applyHeaders(req)

	resp, errResp := c.httpClient.Do(req)
	if errResp != nil {
		return apiResponse{}, errors.Join(errResp, errRequest)
	}
	defer c.closeBody(resp)

	if resp.StatusCode == http.StatusTooManyRequests {
		return apiResponse{Res: "ERROR", Error: "rate limited"}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return apiResponse{}, fmt.Errorf("%w: status %d", errRequest, resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return apiResponse{}, errors.Join(err, errDecode)
	}

	return parsed, nil
}

// siteRoot is the bare scheme and host of the API, visited once for session
// warm up before any API call.
func siteRoot(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return config.DefaultSiteURL
	}

	return parsed.Scheme + "://" + parsed.Host + "/"
}

// warmUp visits the site root once so any session cookies get set before the
// first real API call. Failure here is not fatal, the API may still answer.
func (c *Client) warmUp(ctx context.Context) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL, nil)
	if errReq != nil {
		return
	}
	c.applyHeaders(req)

	resp, errResp := c.httpClient.Do(req)
	if errResp != nil {
		slog.Warn("Session warm up failed", slog.String("error", errResp.Error()))

		return
	}
	c.closeBody(resp)

	slog.Debug("Session initialized", slog.Int("status", resp.StatusCode))
}

func (c *Client) applyHeaders(req *http.Request) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Error("Failed to close response body", slog.String("error", err.Error()))
	}
}

// sleep waits for the given duration unless the context finishes first.
func sleep(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}
