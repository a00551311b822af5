package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName       = "fittrack"
	ledgerFileName   = "fittrack.db"
	serverDBFileName = "fittrack-server.db"
)

// DefaultLedgerPath is where the device-local ledger lives unless --db
// overrides it.
func DefaultLedgerPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, ledgerFileName), nil
}

// DefaultServerDBPath is where the sync server stores its database unless
// FITTRACK_SERVER_DB overrides it.
func DefaultServerDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, serverDBFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
