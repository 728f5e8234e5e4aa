// Package testutil provides shared helpers for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SettingsFile writes content to <dir>/settings.json and returns the
// path.
func SettingsFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings fixture: %v", err)
	}
	return path
}

// ReadFile reads a file or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
