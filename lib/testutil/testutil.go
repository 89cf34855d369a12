package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes `contents` to `path`, creating parent directories.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatal(err)
	}
}

// ReadFile returns the contents of `path` as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(contents)
}

// RequireMissing fails unless nothing exists at `path`.
func RequireMissing(t testing.TB, path string) {
	t.Helper()
	_, err := os.Stat(path)
	if !os.IsNotExist(err) {
		t.Fatalf("expected %s to not exist (stat err: %v)", path, err)
	}
}
