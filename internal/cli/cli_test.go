package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fuabioo/zipaudit/internal/errors"
	"github.com/spf13/cobra"
)

// setupTestEnv points the config directory at a fresh temp dir.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("ZIPAUDIT_CONFIG_DIR", tempDir)
	t.Setenv("ZIPAUDIT_NO_COLOR", "")

	return tempDir
}

// createTestZip creates a test zip file holding files (path -> content).
func createTestZip(t *testing.T, dir string, name string, files map[string]string) string {
	t.Helper()

	zipPath := filepath.Join(dir, name)
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for path, content := range files {
		f, err := w.Create(path)
		if err != nil {
			t.Fatalf("failed to create %s in zip: %v", path, err)
		}
		if _, err := io.WriteString(f, content); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return zipPath
}

// createBombZip creates an archive with one entry declaring a 5000:1 ratio.
func createBombZip(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
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
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	zipPath := filepath.Join(dir, "bomb.zip")
	if err := os.WriteFile(zipPath, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write zip: %v", err)
	}
	return zipPath
}

// executeCommand executes a cobra command with args and returns output.
// Captures real os.Stdout/os.Stderr as well as cobra's writers.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	// Save and restore original stdout/stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr
	defer func() {
		os.Stdout = oldStdout
		os.Stderr = oldStderr
	}()

	// Create pipes
	stdoutR, stdoutW, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create stdout pipe: %v", pipeErr)
	}
	stderrR, stderrW, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create stderr pipe: %v", pipeErr)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	// Also set cobra's output to the pipes
	cmd.SetOut(stdoutW)
	cmd.SetErr(stderrW)
	cmd.SetArgs(args)

	// Execute in goroutine so pipe reads don't block
	errChan := make(chan error, 1)
	go func() {
		errChan <- cmd.Execute()
		stdoutW.Close()
		stderrW.Close()
	}()

	// Read all output
	var stdoutBuf, stderrBuf bytes.Buffer
	stdoutDone := make(chan struct{})
	stderrDone := make(chan struct{})
	go func() {
		_, _ = io.Copy(&stdoutBuf, stdoutR)
		close(stdoutDone)
	}()
	go func() {
		_, _ = io.Copy(&stderrBuf, stderrR)
		close(stderrDone)
	}()

	err = <-errChan
	<-stdoutDone
	<-stderrDone

	return stdoutBuf.String(), stderrBuf.String(), err
}

func TestRootCommand_JSONReport(t *testing.T) {
	setupTestEnv(t)
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{
		"a.txt":     "hello world",
		"dir/b.txt": "more content",
	})

	stdout, _, err := executeCommand(t, newRootCmd(), zipPath)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}

	var report map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("failed to parse report: %v\n%s", err, stdout)
	}

	if report["entry_count"] != float64(2) {
		t.Errorf("entry_count = %v, want 2", report["entry_count"])
	}

	if report["has_absolute_paths"] != false {
		t.Errorf("has_absolute_paths = %v, want false", report["has_absolute_paths"])
	}

	// Pretty output by default
	if !strings.Contains(stdout, "\n  \"entry_count\"") {
		t.Errorf("expected indented JSON, got: %s", stdout)
	}
}

func TestRootCommand_Compact(t *testing.T) {
	setupTestEnv(t)
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "x"})

	stdout, _, err := executeCommand(t, newRootCmd(), "--compact", zipPath)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}

	if strings.Count(stdout, "\n") != 1 {
		t.Errorf("expected single-line JSON, got: %s", stdout)
	}
}

func TestRootCommand_TextFormat(t *testing.T) {
	setupTestEnv(t)
	zipPath := createBombZip(t, t.TempDir())

	stdout, _, err := executeCommand(t, newRootCmd(), "--format", "text", "--color", "never", zipPath)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}

	if !strings.Contains(stdout, "Archive audit") {
		t.Errorf("missing heading: %s", stdout)
	}
	if !strings.Contains(stdout, "HugeRatio (10 -> 50000 bytes)") {
		t.Errorf("missing finding: %s", stdout)
	}
	if strings.Contains(stdout, "\x1b[") {
		t.Errorf("unexpected color codes: %q", stdout)
	}
}

func TestRootCommand_FormatFromConfig(t *testing.T) {
	dir := setupTestEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output:\n  format: text\n  color: never\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "x"})

	stdout, _, err := executeCommand(t, newRootCmd(), zipPath)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}

	if !strings.Contains(stdout, "Archive audit") {
		t.Errorf("expected text output from config, got: %s", stdout)
	}
}

func TestRootCommand_UnknownFormat(t *testing.T) {
	setupTestEnv(t)
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "x"})

	_, _, err := executeCommand(t, newRootCmd(), "--format", "xml", zipPath)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if getExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", getExitCode(err))
	}
}

func TestRootCommand_ArgumentCount(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "two arguments", args: []string{"a.zip", "b.zip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			stdout, _, err := executeCommand(t, cmd, tt.args...)
			if err == nil {
				t.Fatal("expected usage error")
			}

			if stdout != "" {
				t.Errorf("expected nothing on stdout, got: %s", stdout)
			}

			if getExitCode(err) != 1 {
				t.Errorf("exit code = %d, want 1", getExitCode(err))
			}

			var buf bytes.Buffer
			printError(&buf, err)
			if !strings.Contains(buf.String(), "Usage:") {
				t.Errorf("expected usage text, got: %s", buf.String())
			}
			if !strings.Contains(buf.String(), "exactly one archive path") {
				t.Errorf("expected argument count message, got: %s", buf.String())
			}
		})
	}
}

func TestRootCommand_MissingArchive(t *testing.T) {
	setupTestEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.zip")

	stdout, _, err := executeCommand(t, newRootCmd(), missing)
	if err == nil {
		t.Fatal("expected error for missing archive")
	}

	if !errors.Is(err, errors.CodeArchiveNotFound) {
		t.Errorf("expected %s, got %v", errors.CodeArchiveNotFound, err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got: %s", stdout)
	}
	if getExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", getExitCode(err))
	}
}

func TestRootCommand_NotAZip(t *testing.T) {
	setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, _, err := executeCommand(t, newRootCmd(), path)
	if !errors.Is(err, errors.CodeArchiveOpenFailed) {
		t.Errorf("expected %s, got %v", errors.CodeArchiveOpenFailed, err)
	}
}

func TestRootCommand_CheckViolations(t *testing.T) {
	setupTestEnv(t)
	zipPath := createBombZip(t, t.TempDir())

	stdout, stderr, err := executeCommand(t, newRootCmd(), "--check", zipPath)
	if err == nil {
		t.Fatal("expected policy violation")
	}

	if !errors.Is(err, errors.CodePolicyViolation) {
		t.Errorf("expected %s, got %v", errors.CodePolicyViolation, err)
	}
	if getExitCode(err) != 5 {
		t.Errorf("exit code = %d, want 5", getExitCode(err))
	}
	if !strings.Contains(stderr, "violation: max_ratio") {
		t.Errorf("expected max_ratio violation on stderr, got: %s", stderr)
	}
	// The report is still printed
	if !strings.Contains(stdout, "\"suspicious_entries\"") {
		t.Errorf("expected report on stdout, got: %s", stdout)
	}
}

func TestRootCommand_CheckClean(t *testing.T) {
	setupTestEnv(t)
	zipPath := createTestZip(t, t.TempDir(), "clean.zip", map[string]string{"readme.md": "hi"})

	_, stderr, err := executeCommand(t, newRootCmd(), "--check", zipPath)
	if err != nil {
		t.Fatalf("expected clean archive to pass, got %v", err)
	}
	if strings.Contains(stderr, "violation") {
		t.Errorf("unexpected violations: %s", stderr)
	}
}

func TestRootCommand_CheckIgnore(t *testing.T) {
	dir := setupTestEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("policy:\n  max_ratio: 0\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	zipPath := createBombZip(t, t.TempDir())

	_, stderr, err := executeCommand(t, newRootCmd(), "--check", "--ignore", "*.bin", zipPath)
	if err != nil {
		t.Fatalf("expected ignored finding to pass, got %v (stderr: %s)", err, stderr)
	}
}

func TestRootCommand_VerboseLogs(t *testing.T) {
	setupTestEnv(t)
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "x"})

	_, stderr, err := executeCommand(t, newRootCmd(), "--verbose", zipPath)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}

	if !strings.Contains(stderr, "scan finished") {
		t.Errorf("expected debug logs on stderr, got: %s", stderr)
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := setupTestEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{invalid json}"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "x"})

	_, _, err := executeCommand(t, newRootCmd(), zipPath)
	if !errors.Is(err, errors.CodeInvalidConfig) {
		t.Errorf("expected %s, got %v", errors.CodeInvalidConfig, err)
	}
}

func TestHelpers_GetExitCode(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "policy violation",
			err:  errors.PolicyViolation(2),
			want: 5,
		},
		{
			name: "archive not found",
			err:  errors.ArchiveNotFound("x.zip"),
			want: 1,
		},
		{
			name: "entry read failed",
			err:  errors.EntryReadFailed(3, fmt.Errorf("boom")),
			want: 1,
		},
		{
			name: "usage error",
			err:  &usageError{msg: "bad args"},
			want: 1,
		},
		{
			name: "generic cobra error",
			err:  fmt.Errorf("unknown flag: --output"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getExitCode(tt.err)
			if got != tt.want {
				t.Errorf("getExitCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHelpers_OutputJSON(t *testing.T) {
	data := map[string]interface{}{
		"key":   "value",
		"count": 42,
	}

	var buf bytes.Buffer
	if err := outputJSON(&buf, data); err != nil {
		t.Fatalf("outputJSON() error = %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}

	if result["key"] != "value" {
		t.Errorf("key = %v, want value", result["key"])
	}
	if int(result["count"].(float64)) != 42 {
		t.Errorf("count = %v, want 42", result["count"])
	}
}

func TestHelpers_UseColor(t *testing.T) {
	var buf bytes.Buffer

	if !useColor("always", &buf) {
		t.Error("always should enable color")
	}
	if useColor("never", &buf) {
		t.Error("never should disable color")
	}
	if useColor("auto", &buf) {
		t.Error("auto should disable color for non-terminal writers")
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.ArchiveNotFound("x.zip"))

	output := buf.String()
	if !strings.HasPrefix(output, "Error:") {
		t.Errorf("stderr missing 'Error:' prefix, got: %s", output)
	}
	if !strings.Contains(output, "ARCHIVE_NOT_FOUND") {
		t.Errorf("stderr missing error code, got: %s", output)
	}
	if strings.Contains(output, "Usage:") {
		t.Errorf("unexpected usage for non-usage error: %s", output)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, newRootCmd(), "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !strings.Contains(stdout, "zipaudit version") {
		t.Errorf("output missing version info: %s", stdout)
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, newRootCmd(), "version", "--json")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("failed to parse version JSON: %v", err)
	}

	if result["version"] != Version {
		t.Errorf("version = %v, want %s", result["version"], Version)
	}
}

func TestGetVersion(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "1.2.3", "abcdef0123456"
	if got := GetVersion(); got != "1.2.3 (abcdef0)" {
		t.Errorf("GetVersion() = %q", got)
	}

	Commit = "abc"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("GetVersion() with short commit = %q", got)
	}
}
