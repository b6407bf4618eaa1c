package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/models"

	"go.uber.org/zap"
)

// Endpoint paths on the analytics backend.
const (
	pathInit       = "/init"
	pathLinkUser   = "/linkUser"
	pathTrackEvent = "/trackEvent"
	pathGetAppUser = "/getAppUser"
	pathHeartbeat  = "/heartbeat"
)

// APIClient handles communication with the Mobiqo backend. All requests are
// JSON over POST; the client performs no retries and no buffering.
type APIClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger

	// apiKey may be replaced by a re-initialize while the heartbeat
	// goroutine is building a request.
	mu     sync.RWMutex
	apiKey string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetAPIKey replaces the key sent with subsequent requests.
func (c *APIClient) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = apiKey
	c.mu.Unlock()
}

// Init validates the API key with the backend and returns the project the
// key belongs to. An explicit rejection surfaces as
// *InitializationFailedError rather than *APIError.
func (c *APIClient) Init(ctx context.Context, req models.InitRequest) (*models.InitResponse, error) {
	var resp models.InitResponse
	if err := c.postJSON(ctx, pathInit, req, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return nil, &InitializationFailedError{Reason: apiErr.Message}
		}
		return nil, err
	}
	if !resp.Authorized {
		return nil, &InitializationFailedError{Reason: resp.Message}
	}
	return &resp, nil
}

// LinkUser syncs a user with the backend and opens (or refreshes) a session.
func (c *APIClient) LinkUser(ctx context.Context, req models.SyncUserRequest) (*models.SyncUserResponse, error) {
	var resp models.SyncUserResponse
	if err := c.postJSON(ctx, pathLinkUser, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrackEvent records a single event against an open session.
func (c *APIClient) TrackEvent(ctx context.Context, req models.TrackEventRequest) error {
	return c.postJSON(ctx, pathTrackEvent, req, nil)
}

// GetAppUser fetches the user record and statistics without touching the
// session.
func (c *APIClient) GetAppUser(ctx context.Context, req models.GetAppUserRequest) (*models.GetUserInfoResponse, error) {
	var resp models.GetUserInfoResponse
	if err := c.postJSON(ctx, pathGetAppUser, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Heartbeat reports session liveness. The response may carry a rotated
// session id.
func (c *APIClient) Heartbeat(ctx context.Context, sessionID string) (*models.HeartbeatResponse, error) {
	var resp models.HeartbeatResponse
	if err := c.postJSON(ctx, pathHeartbeat, models.HeartbeatRequest{SessionID: sessionID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// postJSON sends payload to the given path and decodes the 2xx body into
// out. out may be nil for endpoints whose body the caller does not need.
func (c *APIClient) postJSON(ctx context.Context, path string, payload, out any) error {
	target := c.baseURL + path
	if _, err := url.ParseRequestURI(target); err != nil {
		c.logger.Error("Invalid request URL", zap.String("url", target))
		return &InvalidURLError{URL: target}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &EncodingError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewBuffer(jsonData))
	if err != nil {
		return &InvalidURLError{URL: target}
	}

	req.Header.Set("Content-Type", "application/json")
	c.mu.RLock()
	apiKey := c.apiKey
	c.mu.RUnlock()
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("Request failed",
			zap.String("path", path),
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &InvalidResponseError{Message: "failed to read response body: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Backend error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(body)),
		)
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	c.logger.Debug("Request succeeded",
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	if out == nil {
		return nil
	}
	if len(body) == 0 {
		return &InvalidResponseError{Message: "empty response body from " + path}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodingError{Err: err}
	}
	return nil
}
