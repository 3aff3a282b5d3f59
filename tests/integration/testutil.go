// Package integration provides end-to-end tests that drive the built
// bookstore binary over stdin, the way a user session does.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// bookstoreBin is the path to the built bookstore binary.
	bookstoreBin string
	// buildErr captures any build failure from TestMain.
	buildErr error
)

// SetBookstoreBin sets the binary path (called from TestMain).
func SetBookstoreBin(path string) {
	bookstoreBin = path
}

// SetBuildErr records a build failure (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// FindProjectRoot walks up from the working directory looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated environment with its own config and data directory.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates an isolated environment using the given backend.
func NewTestEnv(t *testing.T, backend string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build bookstore: %v", buildErr)
	}
	if bookstoreBin == "" {
		t.Fatal("bookstore binary not built")
	}

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	dataDir := filepath.Join(tempDir, "data")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	content := "backend: " + backend + "\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{t: t, ConfigDir: configDir, DataDir: dataDir}
}

// CmdResult holds the outcome of one bookstore invocation.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the bookstore CLI with the given arguments and no stdin.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	return e.run("", args...)
}

// RunSession runs the interpreter with the given stdin script.
func (e *TestEnv) RunSession(input string) CmdResult {
	e.t.Helper()
	return e.run(input)
}

func (e *TestEnv) run(input string, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(bookstoreBin, allArgs...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run bookstore: %v", err)
		}
	}

	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// MustRunSession runs the interpreter and fails the test on a non-zero exit.
func (e *TestEnv) MustRunSession(input string) CmdResult {
	e.t.Helper()
	result := e.RunSession(input)
	if result.ExitCode != 0 {
		e.t.Fatalf("session failed with exit code %d:\nstdout: %s\nstderr: %s",
			result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ReadDataFile reads a record file from the data directory.
func (e *TestEnv) ReadDataFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.DataDir, name))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}
