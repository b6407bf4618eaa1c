package device

import (
	"os"
	"runtime"
	"strings"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/models"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/storage"

	"github.com/google/uuid"
)

// Info resolves the device metadata attached to init and sync requests.
// The install id is stable across restarts: it is read from the store when
// present, otherwise derived from the host machine id (falling back to a
// fresh UUID) and persisted.
func Info(store storage.Store, appVersion string) (models.DeviceInfo, error) {
	installID, err := resolveInstallID(store)
	if err != nil {
		return models.DeviceInfo{}, err
	}

	return models.DeviceInfo{
		InstallID:  installID,
		OS:         runtime.GOOS,
		AppVersion: appVersion,
	}, nil
}

func resolveInstallID(store storage.Store) (string, error) {
	existing, ok, err := store.Get(storage.KeyInstallID)
	if err != nil {
		return "", err
	}
	if ok && existing != "" {
		return existing, nil
	}

	installID := machineID()
	if installID == "" {
		installID = uuid.New().String()
	}

	if err := store.Set(storage.KeyInstallID, installID); err != nil {
		return "", err
	}
	return installID, nil
}

// machineID returns a host-stable identifier, or "" when none is available.
func machineID() string {
	for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return strings.TrimSpace(string(data))
		}
	}

	hostname, err := os.Hostname()
	if err == nil && hostname != "" {
		return runtime.GOOS + "-" + hostname
	}

	return ""
}
