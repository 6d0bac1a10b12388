// Package common provides shared constants, types, and utilities
// used across the NordVPN Indicator application.
package common

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GetConfigDir returns the path to the application configuration directory.
// It creates the directory if it doesn't exist.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", WrapError(err, "failed to get home directory")
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", WrapError(err, "failed to create config directory")
	}

	return configDir, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadMarker returns the trimmed contents of a marker file, or "" if it is missing.
func ReadMarker(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// WriteMarker replaces the contents of a marker file.
// An empty value removes the file instead.
func WriteMarker(path, value string) error {
	if value == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0600)
}

// TouchFile creates an empty file if it does not exist yet.
func TouchFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	return f.Close()
}

// OpenURI opens a link or a file with the desktop's default handler.
// It does not wait for the handler to exit.
func OpenURI(uri string) error {
	cmd := exec.Command("xdg-open", uri)
	if err := cmd.Start(); err != nil {
		return WrapError(err, "failed to open "+uri)
	}
	go cmd.Wait()
	return nil
}
