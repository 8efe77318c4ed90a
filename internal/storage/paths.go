// Package storage persists preferences, statistics and saved games in an
// embedded BadgerDB database.
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chesstutor"

// dataHome is the per-user base directory for application data:
//   - macOS: ~/Library/Application Support
//   - Windows: %APPDATA%, else ~/AppData/Roaming
//   - others: $XDG_DATA_HOME, else ~/.local/share
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support")
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return underHome("AppData", "Roaming")
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		return underHome(".local", "share")
	}
}

func underHome(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// ensureDir creates dir when missing and returns it.
func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// GetDataDir returns the application data directory, creating it if needed.
func GetDataDir() (string, error) {
	base, err := dataHome()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the BadgerDB directory inside the data directory.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	dbDir, err := ensureDir(filepath.Join(dataDir, "db"))
	if err != nil {
		return "", err
	}
	log.Printf("[STORAGE] Database directory: %s", dbDir)
	return dbDir, nil
}

// GetLogPath returns the path of a named log file in the data directory,
// falling back to the temp directory when there is none.
func GetLogPath(name string) string {
	dir, err := GetDataDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name)
}
