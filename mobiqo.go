package mobiqo

import (
	"fmt"
	"time"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/client"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/database"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/device"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/models"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/session"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/storage"

	"go.uber.org/zap"
)

// Re-exported schema types. The wire representations live with the internal
// packages; these aliases are the public names.
type (
	AppUser             = models.AppUser
	Statistics          = models.Statistics
	AdditionalData      = models.AdditionalData
	SyncUserResponse    = models.SyncUserResponse
	GetUserInfoResponse = models.GetUserInfoResponse
	EventType           = models.EventType
	State               = session.State
)

// Event type wire values.
const (
	EventTypeClick           = models.EventTypeClick
	EventTypeAction          = models.EventTypeAction
	EventTypeScreenView      = models.EventTypeScreenView
	EventTypePaywallView     = models.EventTypePaywallView
	EventTypePaywallDismiss  = models.EventTypePaywallDismiss
	EventTypePurchaseAttempt = models.EventTypePurchaseAttempt
	EventTypePurchaseSuccess = models.EventTypePurchaseSuccess
	EventTypePurchaseFailed  = models.EventTypePurchaseFailed
	EventTypeFormSubmit      = models.EventTypeFormSubmit
	EventTypeNavigation      = models.EventTypeNavigation
	EventTypeError           = models.EventTypeError
	EventTypeCustom          = models.EventTypeCustom
)

// Re-exported error taxonomy.
type (
	InvalidURLError           = client.InvalidURLError
	EncodingError             = client.EncodingError
	NetworkError              = client.NetworkError
	InvalidResponseError      = client.InvalidResponseError
	DecodingError             = client.DecodingError
	APIError                  = client.APIError
	InitializationFailedError = client.InitializationFailedError
)

// Precondition errors, detected locally with no network attempt.
var (
	ErrNotInitialized = session.ErrNotInitialized
	ErrUserNotSynced  = session.ErrUserNotSynced
)

// Options configures the SDK. Zero values select sensible defaults; only
// APIKey is required.
type Options struct {
	// APIKey authenticates every request to the backend.
	APIKey string

	// BaseURL is the backend host. Defaults to the production endpoint.
	BaseURL string

	// StoragePath is the sqlite file holding state that survives
	// restarts. Empty selects an in-memory store (state is lost on
	// restart).
	StoragePath string

	// HeartbeatInterval overrides the session liveness period. Zero
	// selects the default.
	HeartbeatInterval time.Duration

	// Timeout bounds each HTTP request. Zero selects 30s.
	Timeout time.Duration

	// AppVersion is reported to the backend as device metadata.
	AppVersion string

	// Logger receives SDK logs. Nil selects a no-op logger.
	Logger *zap.Logger
}

const (
	defaultBaseURL = "https://api.mobiqo.io"
	defaultTimeout = 30 * time.Second
)

// Client is the SDK entry point: a session lifecycle manager bound to its
// local persistence.
type Client struct {
	*session.Manager
	db *database.DB
}

// New wires up the SDK. The returned client must be Closed when no longer
// needed; Close does not dispose the session, so state survives restarts.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("mobiqo: APIKey is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var (
		store storage.Store
		db    *database.DB
	)
	if opts.StoragePath == "" {
		store = storage.NewMemoryStore()
	} else {
		var err error
		db, err = database.New(opts.StoragePath, opts.Logger)
		if err != nil {
			return nil, fmt.Errorf("mobiqo: %w", err)
		}
		store = storage.NewKeyValueStore(db.DB, opts.Logger)
	}

	dev, err := device.Info(store, opts.AppVersion)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("mobiqo: failed to resolve device info: %w", err)
	}

	api := client.NewAPIClient(opts.BaseURL, opts.APIKey, opts.Timeout, opts.Logger)
	manager := session.NewManager(api, store, dev, opts.HeartbeatInterval, opts.Logger)

	return &Client{Manager: manager, db: db}, nil
}

// Close releases local resources. It stops the heartbeat loop but keeps
// persisted state; call Dispose first to forget the session entirely.
func (c *Client) Close() error {
	c.StopHeartbeat()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
