package mcp

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// createTestZip creates a simple test zip file with the given files.
// files is a map of path -> content.
func createTestZip(t *testing.T, zipPath string, files map[string]string) {
	t.Helper()

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	defer w.Close()

	for path, content := range files {
		f, err := w.Create(path)
		if err != nil {
			t.Fatalf("failed to create file %s in zip: %v", path, err)
		}

		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write content to %s: %v", path, err)
		}
	}
}

// createBombZip writes a single stored entry whose declared sizes give a
// 5000:1 ratio.
func createBombZip(t *testing.T, zipPath string) {
	t.Helper()

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	defer w.Close()

	f, err := w.CreateRaw(&zip.FileHeader{
		Name:               "payload.bin",
		Method:             zip.Store,
		CompressedSize64:   10,
		UncompressedSize64: 50000,
	})
	if err != nil {
		t.Fatalf("failed to create raw entry: %v", err)
	}
	if _, err := f.Write(make([]byte, 10)); err != nil {
		t.Fatalf("failed to write raw entry: %v", err)
	}
}

// setupTestEnvironment points the config directory at a fresh temp dir.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("ZIPAUDIT_CONFIG_DIR", tempDir)

	return tempDir
}

func writeTestConfig(t *testing.T, dir, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
