package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"epubstamp/epub"
)

func clearRunEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DIRECTORY", "TEMPLATE", "TITLE", "DESCRIPTION", "SUBJECT", "LOG_LEVEL", "DRY_RUN"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func execute(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunFailsWithoutDirectory(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("TEMPLATE", "{author} {year}")

	if _, err := execute("run"); err == nil {
		t.Fatal("expected failure when DIRECTORY is unset")
	}
}

func TestRunFailsWithoutTemplate(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("DIRECTORY", t.TempDir())

	if _, err := execute("run"); err == nil {
		t.Fatal("expected failure when TEMPLATE is unset")
	}
}

func TestRunEmptyDirectorySucceeds(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("DIRECTORY", t.TempDir())
	t.Setenv("TEMPLATE", "{author} {year}")

	if _, err := execute("run"); err != nil {
		t.Fatalf("run over empty directory failed: %v", err)
	}
}

func TestRunUpdatesFile(t *testing.T) {
	clearRunEnv(t)

	dir := t.TempDir()
	src := createTestEPUB(t)
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "Jane Doe Magazin 2024 - Ausgabe 12.epub")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DIRECTORY", dir)
	t.Setenv("TEMPLATE", "{author} {type} {year} - Ausgabe {ausgabe}")
	t.Setenv("TITLE", "{ausgabe}/{year[-2:]}")
	t.Setenv("SUBJECT", "{author} - {type}")

	out, err := execute("run")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Jane Doe") {
		t.Errorf("report missing file diff: %s", out)
	}

	book, err := epub.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()
	if got := book.Package.GetTitle(); got != "12/24" {
		t.Errorf("title = %q", got)
	}
	if got := book.Package.GetSubjects(); len(got) != 1 || got[0] != "Jane Doe - Magazin" {
		t.Errorf("subjects = %v", got)
	}
}
