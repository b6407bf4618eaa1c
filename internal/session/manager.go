// Package session implements the SDK's session lifecycle: initialization
// state, session identity, and the heartbeat loop that keeps a session
// alive.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/client"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/models"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/storage"

	"go.uber.org/zap"
)

// DefaultHeartbeatInterval is the period of the session liveness loop.
// Operators may shorten it through configuration; callers cannot change it
// at runtime.
const DefaultHeartbeatInterval = 20 * time.Second

// Manager owns the single source of truth for the SDK's session state:
// whether the SDK is initialized, which project and session it belongs to,
// and whether the heartbeat loop is running. Methods are safe to call from
// any goroutine; all state mutation is serialized behind one mutex, and
// every network completion re-checks a generation counter before touching
// state so a completion that lands after Dispose cannot resurrect anything.
type Manager struct {
	api      *client.APIClient
	store    storage.Store
	device   models.DeviceInfo
	interval time.Duration
	logger   *zap.Logger

	mu         sync.RWMutex
	projectID  string
	sessionID  string
	generation uint64

	hbStop chan struct{}
	hbWG   sync.WaitGroup
}

// State is a snapshot of the manager's session state.
type State struct {
	ProjectID       string
	SessionID       string
	HeartbeatActive bool
}

// NewManager creates a session manager, hydrating project and session ids
// persisted by a previous run. An interval of zero selects the default
// heartbeat period.
func NewManager(api *client.APIClient, store storage.Store, device models.DeviceInfo, interval time.Duration, logger *zap.Logger) *Manager {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}

	m := &Manager{
		api:      api,
		store:    store,
		device:   device,
		interval: interval,
		logger:   logger,
	}

	if projectID, ok, err := store.Get(storage.KeyProjectID); err != nil {
		logger.Warn("Failed to hydrate project id", zap.Error(err))
	} else if ok {
		m.projectID = projectID
	}
	if sessionID, ok, err := store.Get(storage.KeySessionID); err != nil {
		logger.Warn("Failed to hydrate session id", zap.Error(err))
	} else if ok {
		m.sessionID = sessionID
	}

	if m.projectID != "" || m.sessionID != "" {
		logger.Info("Session state hydrated from storage",
			zap.Bool("has_project", m.projectID != ""),
			zap.Bool("has_session", m.sessionID != ""),
		)
	}

	return m
}

// Initialize validates the API key with the backend and stores the project
// id it resolves to. Calling it again re-validates and overwrites the
// stored project id on success. An explicit authorization rejection clears
// any previously held project id; other failures leave it intact.
func (m *Manager) Initialize(ctx context.Context, apiKey string) error {
	m.mu.RLock()
	gen := m.generation
	m.mu.RUnlock()

	m.api.SetAPIKey(apiKey)
	resp, err := m.api.Init(ctx, models.InitRequest{
		APIKey: apiKey,
		Device: &m.device,
	})
	if err != nil {
		if _, rejected := err.(*client.InitializationFailedError); rejected {
			m.mu.Lock()
			if gen == m.generation {
				m.projectID = ""
				m.removeKey(storage.KeyProjectID)
			}
			m.mu.Unlock()
		}
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.logger.Debug("Discarding stale initialize completion")
		return nil
	}

	m.projectID = resp.ProjectID
	m.setKey(storage.KeyProjectID, resp.ProjectID)

	m.logger.Info("SDK initialized", zap.String("project_id", resp.ProjectID))
	return nil
}

// SyncUser links the given external user to the project and opens a
// session. On success the returned session id is adopted and persisted and
// the heartbeat loop is started if it is not already running; repeated
// calls never spawn a second loop.
func (m *Manager) SyncUser(ctx context.Context, externalUserID string, includeAdvancedAnalysis bool, personalData *models.AdditionalData) (*models.SyncUserResponse, error) {
	m.mu.RLock()
	gen := m.generation
	projectID := m.projectID
	m.mu.RUnlock()

	if projectID == "" {
		return nil, ErrNotInitialized
	}

	resp, err := m.api.LinkUser(ctx, models.SyncUserRequest{
		RevenueCatUserID:        externalUserID,
		ProjectID:               projectID,
		LocalTimestamp:          time.Now().UnixMilli(),
		IncludeAdvancedAnalysis: includeAdvancedAnalysis,
		PersonalData:            personalData,
		Device:                  &m.device,
	})
	if err != nil {
		return nil, err
	}
	// A session id is the whole point of the sync; a 2xx reply without one
	// must not leave the heartbeat loop running against nothing.
	if resp.SessionID == "" {
		return nil, &client.InvalidResponseError{Message: "linkUser response missing session_id"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.logger.Debug("Discarding stale sync completion")
		return resp, nil
	}

	m.sessionID = resp.SessionID
	m.setKey(storage.KeySessionID, resp.SessionID)
	m.ensureHeartbeatLocked()

	m.logger.Info("User synced",
		zap.Bool("is_new_user", resp.IsNewUser),
		zap.String("session_id", resp.SessionID),
	)
	return resp, nil
}

// TrackEvent records a single event against the open session. A
// local_timestamp entry (epoch milliseconds) is always injected into the
// additional data; caller-supplied keys are preserved. Neither success nor
// failure mutates session state.
func (m *Manager) TrackEvent(ctx context.Context, eventName string, eventType models.EventType, additionalData map[string]any) error {
	m.mu.RLock()
	sessionID := m.sessionID
	m.mu.RUnlock()

	if sessionID == "" {
		return ErrUserNotSynced
	}

	data := make(map[string]any, len(additionalData)+1)
	for k, v := range additionalData {
		data[k] = v
	}
	data["local_timestamp"] = time.Now().UnixMilli()

	if err := m.api.TrackEvent(ctx, models.TrackEventRequest{
		EventName:      eventName,
		EventType:      eventType,
		SessionID:      sessionID,
		AdditionalData: data,
	}); err != nil {
		return err
	}

	m.logger.Debug("Event tracked",
		zap.String("event_name", eventName),
		zap.String("event_type", string(eventType)),
	)
	return nil
}

// GetUserInfo fetches the user record and statistics. It has no session
// precondition and never mutates state.
func (m *Manager) GetUserInfo(ctx context.Context, externalUserID string, includeAdvancedAnalysis bool) (*models.GetUserInfoResponse, error) {
	return m.api.GetAppUser(ctx, models.GetAppUserRequest{
		RevenueCatUserID:        externalUserID,
		IncludeAdvancedAnalysis: includeAdvancedAnalysis,
	})
}

// UpdateUser sends updated personal data for the synced user without
// opening a new session. The session id and heartbeat loop are left
// untouched regardless of the server's reply.
func (m *Manager) UpdateUser(ctx context.Context, externalUserID string, personalData *models.AdditionalData) error {
	m.mu.RLock()
	projectID := m.projectID
	sessionID := m.sessionID
	m.mu.RUnlock()

	if sessionID == "" {
		return ErrUserNotSynced
	}

	_, err := m.api.LinkUser(ctx, models.SyncUserRequest{
		RevenueCatUserID: externalUserID,
		ProjectID:        projectID,
		SessionID:        sessionID,
		LocalTimestamp:   time.Now().UnixMilli(),
		PersonalData:     personalData,
		Device:           &m.device,
	})
	return err
}

// Dispose stops the heartbeat loop, clears in-memory session state, and
// removes the persisted entries (including legacy keys). It is idempotent
// and safe to call on a never-initialized manager; afterwards the manager
// behaves exactly like a freshly constructed one. In-flight calls are not
// cancelled, but their completions find a bumped generation and leave the
// cleared state alone.
func (m *Manager) Dispose() {
	m.mu.Lock()
	m.generation++
	m.projectID = ""
	m.sessionID = ""
	m.stopHeartbeatLocked()
	for _, key := range []string{
		storage.KeyProjectID,
		storage.KeySessionID,
		storage.KeyLegacyAPIKey,
		storage.KeyLegacyUserID,
	} {
		m.removeKey(key)
	}
	m.mu.Unlock()

	m.hbWG.Wait()
	m.logger.Info("Session disposed")
}

// StopHeartbeat stops the liveness loop without clearing session state.
// SyncUser restarts it.
func (m *Manager) StopHeartbeat() {
	m.mu.Lock()
	m.stopHeartbeatLocked()
	m.mu.Unlock()
	m.hbWG.Wait()
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		ProjectID:       m.projectID,
		SessionID:       m.sessionID,
		HeartbeatActive: m.hbStop != nil,
	}
}

// setKey persists a value, logging rather than failing: persistence is a
// side-effect, never a reason to fail the operation that produced the
// value.
func (m *Manager) setKey(key, value string) {
	if err := m.store.Set(key, value); err != nil {
		m.logger.Warn("Failed to persist entry", zap.String("key", key), zap.Error(err))
	}
}

func (m *Manager) removeKey(key string) {
	if err := m.store.Remove(key); err != nil {
		m.logger.Warn("Failed to remove entry", zap.String("key", key), zap.Error(err))
	}
}
