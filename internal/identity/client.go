// Package identity talks to the user service that owns client and trainer
// identities. The training service only ever holds references to them.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"fitsync/training-service/internal/config"
	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/metrics"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrServiceUnavailable = errors.New("user service unavailable")
)

// StatusError is any non-2xx answer other than 404. It is not reclassified.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("user service returned %d: %s", e.StatusCode, e.Body)
}

// Client looks up identities in the user service. GetUser is the only
// strict call; the batch and role-info lookups degrade to empty results.
type Client interface {
	GetUser(ctx context.Context, userID, token string) (*domain.User, error)
	GetUsersBatch(ctx context.Context, userIDs []string, token string) []domain.User
	GetRoleInfo(ctx context.Context, userID, token string) domain.RoleInfo
}

type httpClient struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

const defaultTimeout = 5 * time.Second

// NewClient creates a user service client. Every call is a single attempt
// bounded by cfg.Timeout.
func NewClient(cfg config.UserServiceConfig, log *logger.Logger) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "identity"),
	}
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// GetUser fetches a single user record.
func (c *httpClient) GetUser(ctx context.Context, userID, token string) (user *domain.User, err error) {
	defer func() { metrics.IdentityRequest("get_user", err) }()

	var body envelope[domain.User]
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), token, nil, &body); err != nil {
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrServiceUnavailable) {
			c.log.Error("Error validating user", "user_id", userID, "error", err)
		}
		return nil, err
	}
	if body.Data.ID == "" {
		body.Data.ID = userID
	}
	return &body.Data, nil
}

// GetUsersBatch resolves several references at once. Failures are logged and
// yield an empty list.
func (c *httpClient) GetUsersBatch(ctx context.Context, userIDs []string, token string) []domain.User {
	var body envelope[[]domain.User]
	err := c.do(ctx, http.MethodPost, "/api/users/batch", token, map[string]any{"user_ids": userIDs}, &body)
	metrics.IdentityRequest("get_users_batch", err)
	if err != nil {
		c.log.Error("Error fetching users batch", "count", len(userIDs), "error", err)
		return []domain.User{}
	}
	if body.Data == nil {
		return []domain.User{}
	}
	return body.Data
}

// GetRoleInfo returns the role specific profile, or nil on any failure.
func (c *httpClient) GetRoleInfo(ctx context.Context, userID, token string) domain.RoleInfo {
	var body envelope[domain.RoleInfo]
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/role-info", token, nil, &body)
	metrics.IdentityRequest("get_role_info", err)
	if err != nil {
		c.log.Error("Error fetching user role info", "user_id", userID, "error", err)
		return nil
	}
	return body.Data
}

func (c *httpClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode user service response: %w", err)
	}
	return nil
}

// classify maps connection-level failures to ErrServiceUnavailable and leaves
// everything else untouched.
func classify(err error) error {
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return err
}
