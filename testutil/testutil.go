// Package testutil provides shared test fixtures for validator packages:
// spinning up a real parser.FeedLoader backed by a temporary directory of
// GTFS text files, so validator tests exercise the same loading path
// production code does instead of a hand-built in-memory stand-in.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/transitdata/gtfsvalidate/parser"
)

// CreateTestFeedLoader writes the given filename->content map to a temporary
// directory and returns a FeedLoader reading from it. The directory and
// loader are cleaned up automatically when the test completes.
func CreateTestFeedLoader(t *testing.T, files map[string]string) *parser.FeedLoader {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gtfs-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Errorf("failed to remove temp dir: %v", err)
		}
	})

	for filename, content := range files {
		filePath := filepath.Join(tmpDir, filename)
		if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test file %s: %v", filename, err)
		}
	}

	loader, err := parser.LoadFromDirectory(tmpDir)
	if err != nil {
		t.Fatalf("failed to create FeedLoader: %v", err)
	}
	t.Cleanup(func() {
		if err := loader.Close(); err != nil {
			t.Errorf("failed to close loader: %v", err)
		}
	})

	return loader
}
