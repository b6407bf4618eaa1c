package models

// EventType identifies the category of a tracked event. The string values
// are the wire values the backend expects and must not change.
type EventType string

const (
	EventTypeClick           EventType = "click"
	EventTypeAction          EventType = "action"
	EventTypeScreenView      EventType = "screen_view"
	EventTypePaywallView     EventType = "paywall_view"
	EventTypePaywallDismiss  EventType = "paywall_dismiss"
	EventTypePurchaseAttempt EventType = "purchase_attempt"
	EventTypePurchaseSuccess EventType = "purchase_success"
	EventTypePurchaseFailed  EventType = "purchase_failed"
	EventTypeFormSubmit      EventType = "form_submit"
	EventTypeNavigation      EventType = "navigation"
	EventTypeError           EventType = "error"
	EventTypeCustom          EventType = "custom"
)

// EventTypes lists every known event type.
func EventTypes() []EventType {
	return []EventType{
		EventTypeClick,
		EventTypeAction,
		EventTypeScreenView,
		EventTypePaywallView,
		EventTypePaywallDismiss,
		EventTypePurchaseAttempt,
		EventTypePurchaseSuccess,
		EventTypePurchaseFailed,
		EventTypeFormSubmit,
		EventTypeNavigation,
		EventTypeError,
		EventTypeCustom,
	}
}
