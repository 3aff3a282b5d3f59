package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLiteBackendSession(t *testing.T) {
	env := NewTestEnv(t, "sqlite")

	result := env.MustRunSession(strings.Join([]string{
		"su root sjtu",
		"select bk001",
		"modify -price=10.00",
		"import 5 20.00",
		"buy bk001 1",
		"show finance",
		"quit",
	}, "\n") + "\n")

	want := "10.00\n+ 10.00 - 20.00\n"
	if result.Stdout != want {
		t.Fatalf("stdout = %q, want %q", result.Stdout, want)
	}

	if _, err := os.Stat(filepath.Join(env.DataDir, "bookstore.db")); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestSQLiteBackendPersistsAcrossRuns(t *testing.T) {
	env := NewTestEnv(t, "sqlite")

	env.MustRunSession("register alice alicepw Alice\nquit\n")
	env.MustRunSession("su root sjtu\nselect bk001\nquit\n")

	// A third session still sees the catalog record created in the second.
	result := env.MustRunSession("su root sjtu\nshow -ISBN=bk001\nquit\n")
	want := "bk001\t\t\t\t0.00\t0\n"
	if result.Stdout != want {
		t.Fatalf("stdout = %q, want %q", result.Stdout, want)
	}
}

func TestBackendFlagOverridesConfig(t *testing.T) {
	env := NewTestEnv(t, "file")

	result := env.run("su root sjtu\nquit\n", "--backend", "sqlite")
	if result.ExitCode != 0 {
		t.Fatalf("session failed: %s", result.Stderr)
	}
	if _, err := os.Stat(filepath.Join(env.DataDir, "bookstore.db")); err != nil {
		t.Fatalf("sqlite database missing despite --backend=sqlite: %v", err)
	}
}

func TestUnknownBackendFails(t *testing.T) {
	env := NewTestEnv(t, "file")

	result := env.run("quit\n", "--backend", "postgres")
	if result.ExitCode == 0 {
		t.Fatal("expected a non-zero exit code for an unknown backend")
	}
	if !strings.Contains(result.Stderr, "backend") {
		t.Fatalf("stderr = %q, want a backend error", result.Stderr)
	}
}
