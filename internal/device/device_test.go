package device

import (
	"testing"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/storage"
)

func TestInstallIDIsStable(t *testing.T) {
	store := storage.NewMemoryStore()

	first, err := Info(store, "1.2.3")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if first.InstallID == "" {
		t.Fatal("expected non-empty install id")
	}
	if first.AppVersion != "1.2.3" {
		t.Errorf("expected app version 1.2.3, got %s", first.AppVersion)
	}

	second, err := Info(store, "1.2.3")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.InstallID != first.InstallID {
		t.Errorf("install id changed: %s vs %s", first.InstallID, second.InstallID)
	}

	value, ok, err := store.Get(storage.KeyInstallID)
	if err != nil || !ok || value != first.InstallID {
		t.Errorf("expected install id persisted, got %q (ok=%v err=%v)", value, ok, err)
	}
}

func TestPersistedInstallIDWins(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(storage.KeyInstallID, "inst_fixed")

	info, err := Info(store, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if info.InstallID != "inst_fixed" {
		t.Errorf("expected persisted id to win, got %s", info.InstallID)
	}
}
