package models

// AppUser represents the server-owned user record. The backend assigns every
// field, including the first/last-seen timestamps (ISO-8601 strings); the
// client never edits an AppUser locally, it only replaces it with a fresh
// server response.
type AppUser struct {
	ID                 string   `json:"id"`
	ProjectID          string   `json:"project_id"`
	RevenueCatUserID   *string  `json:"revenue_cat_user_id,omitempty"`
	Username           string   `json:"username"`
	OSVersion          string   `json:"os_version"`
	AppVersion         string   `json:"app_version"`
	Country            *string  `json:"country,omitempty"`
	Language           *string  `json:"language,omitempty"`
	FirstSeenAt        string   `json:"first_seen_at"`
	LastSeenAt         string   `json:"last_seen_at"`
	ActiveEntitlements []string `json:"active_entitlements"`
	Cohort             *string  `json:"cohort,omitempty"`
}

// Statistics is the server-computed analytics snapshot for a user. The
// client treats it as an opaque pass-through; none of the metrics are
// derived locally.
type Statistics struct {
	PurchasingPowerParity float64 `json:"purchasing_power_parity"`
	PurchaseIntent        float64 `json:"purchase_intent"`
	ARPU                  float64 `json:"arpu"`
	ARPPU                 float64 `json:"arppu"`
	LTV                   float64 `json:"ltv"`
}

// AdditionalData carries optional caller-supplied identity fields, sent to
// the backend as the personal_data object on sync/update requests.
type AdditionalData struct {
	UserID    *string `json:"user_id,omitempty"`
	UserName  *string `json:"user_name,omitempty"`
	UserEmail *string `json:"user_email,omitempty"`
	Referrer  *string `json:"referrer,omitempty"`
}

// DeviceInfo describes the installation making the request.
type DeviceInfo struct {
	InstallID  string `json:"install_id"`
	OS         string `json:"os"`
	AppVersion string `json:"app_version,omitempty"`
}

// InitRequest is the payload for POST /init.
type InitRequest struct {
	APIKey string      `json:"api_key"`
	Device *DeviceInfo `json:"device,omitempty"`
}

// InitResponse is the body returned by POST /init. Authorized is false when
// the backend rejects the API key; Message carries the server's reason.
type InitResponse struct {
	ProjectID  string `json:"project_id"`
	Authorized bool   `json:"authorized"`
	Message    string `json:"message,omitempty"`
}

// SyncUserRequest is the payload for POST /linkUser.
type SyncUserRequest struct {
	RevenueCatUserID        string          `json:"revenue_cat_user_id"`
	ProjectID               string          `json:"project_id"`
	SessionID               string          `json:"session_id,omitempty"`
	LocalTimestamp          int64           `json:"local_timestamp"`
	IncludeAdvancedAnalysis bool            `json:"include_advanced_analysis"`
	PersonalData            *AdditionalData `json:"personal_data,omitempty"`
	Device                  *DeviceInfo     `json:"device,omitempty"`
}

// SyncUserResponse is the body returned by POST /linkUser. It is the only
// source of a new session id.
type SyncUserResponse struct {
	IsNewUser  bool       `json:"is_new_user"`
	AppUser    AppUser    `json:"app_user"`
	Statistics Statistics `json:"statistics"`
	SessionID  string     `json:"session_id"`
}

// TrackEventRequest is the payload for POST /trackEvent. AdditionalData is
// an open string-keyed bag of JSON scalars; the SDK always injects a
// local_timestamp entry before sending.
type TrackEventRequest struct {
	EventName      string         `json:"event_name"`
	EventType      EventType      `json:"event_type"`
	SessionID      string         `json:"session_id"`
	AdditionalData map[string]any `json:"additional_data"`
}

// GetAppUserRequest is the payload for POST /getAppUser.
type GetAppUserRequest struct {
	RevenueCatUserID        string `json:"revenue_cat_user_id"`
	IncludeAdvancedAnalysis bool   `json:"include_advanced_analysis"`
}

// GetUserInfoResponse is the body returned by POST /getAppUser.
type GetUserInfoResponse struct {
	AppUser    AppUser    `json:"app_user"`
	Statistics Statistics `json:"statistics"`
}

// HeartbeatRequest is the payload for POST /heartbeat.
type HeartbeatRequest struct {
	SessionID string `json:"session_id"`
}

// HeartbeatResponse is the body returned by POST /heartbeat. A non-empty
// SessionID signals server-driven session rotation.
type HeartbeatResponse struct {
	SessionID string `json:"session_id,omitempty"`
}
