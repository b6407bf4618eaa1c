// Package mobiqo provides a Go SDK for the Mobiqo analytics backend.
//
// The SDK links a local application session to the backend, tracks discrete
// events, and keeps the session alive with periodic heartbeats.
//
// Basic usage:
//
//	sdk, err := mobiqo.New(mobiqo.Options{
//	    APIKey:  "mbq_live_xxxxx",
//	    BaseURL: "https://api.mobiqo.io",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sdk.Close()
//
//	if err := sdk.Initialize(ctx, "mbq_live_xxxxx"); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := sdk.SyncUser(ctx, "user_123", false, nil); err != nil {
//	    log.Fatal(err)
//	}
//	err = sdk.TrackEvent(ctx, "paywall_shown", mobiqo.EventTypePaywallView, map[string]any{
//	    "screen": "onboarding",
//	})
package mobiqo

// Version is the SDK version.
const Version = "1.0.0"
