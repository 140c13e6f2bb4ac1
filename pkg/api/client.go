package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnsuccessful 服务端返回 success=false 时的错误
var ErrUnsuccessful = errors.New("server reported failure")

// StatusError 非 2xx 响应
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Client Dermamon 后端 HTTP 客户端
//
// 不做重试，也不设置额外超时；调用方通过 ctx 控制取消。
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient 创建客户端
//
// 参数:
//   - baseURL: API 根地址，如 "http://localhost:5000/api"
//   - token: Bearer token，为空时不发送 Authorization 头
//   - httpClient: 可为 nil，使用 http.DefaultClient
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// BaseURL 返回 API 根地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitScore 提交一局的最终成绩
func (c *Client) SubmitScore(ctx context.Context, submission ScoreSubmission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to encode score submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/game/score", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: http.MethodPost, Path: "/game/score", StatusCode: resp.StatusCode}
	}
	return nil
}

// FetchLeaderboard 获取排行榜（服务端已排序）
func (c *Client) FetchLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/game/leaderboard", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	var payload LeaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}

	if !payload.Success || payload.Leaderboard == nil {
		return nil, fmt.Errorf("%w: leaderboard (status %d)", ErrUnsuccessful, resp.StatusCode)
	}
	return payload.Leaderboard, nil
}

// Health 探测 API 是否在线，任意 2xx 视为在线
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: http.MethodGet, Path: "/health", StatusCode: resp.StatusCode}
	}
	return nil
}
