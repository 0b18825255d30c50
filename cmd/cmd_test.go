package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/bookmeta/internal/config"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmeta.yaml")
	if err := config.WriteDefault(path); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExtractStdin(t *testing.T) {
	cfg := writeTestConfig(t)
	text := strings.Join([]string{"Sapiens", "Yuval Noah Harari", "NXB Tri Thuc", "2015", "9780062316097"}, "\n")

	out, err := execute(t, text, "--config", cfg, "extract", "--layout", "full-info")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var result extraction.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Failed to decode output %q: %v", out, err)
	}

	expected := extraction.Result{
		Title:     "Sapiens",
		Author:    "Yuval Noah Harari",
		Publisher: "NXB Tri Thuc",
		Year:      "2015",
		ISBN:      "9780062316097",
		Layout:    "full-info",
	}
	if result != expected {
		t.Errorf("Expected %+v, got %+v", expected, result)
	}
}

func TestExtractFile(t *testing.T) {
	cfg := writeTestConfig(t)
	path := filepath.Join(t.TempDir(), "cover.txt")
	if err := os.WriteFile(path, []byte("DUNE\nFrank Herbert\nISBN 978-0-441-17271-9"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "--config", cfg, "extract", path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var result extraction.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if result.Title != "DUNE" {
		t.Errorf("Expected title DUNE, got %q", result.Title)
	}
	if result.ISBN != "9780441172719" {
		t.Errorf("Expected ISBN 9780441172719, got %q", result.ISBN)
	}
	if result.Layout != "standard" {
		t.Errorf("Expected default layout standard, got %q", result.Layout)
	}
}

func TestExtractMissingFile(t *testing.T) {
	cfg := writeTestConfig(t)
	if _, err := execute(t, "", "--config", cfg, "extract", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing input file")
	}
}

func TestExtractBadHeights(t *testing.T) {
	cfg := writeTestConfig(t)
	heights := filepath.Join(t.TempDir(), "heights.json")
	if err := os.WriteFile(heights, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "DUNE", "--config", cfg, "extract", "--heights", heights); err == nil {
		t.Error("Expected error for malformed heights file")
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmeta.yaml")

	out, err := execute(t, "", "config", "init", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("Expected output to mention %s, got %q", path, out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	if _, err := execute(t, "", "config", "init", path); err == nil {
		t.Error("Expected error when file exists without --force")
	}
	if _, err := execute(t, "", "config", "init", path, "--force"); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "", "--config", cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"height_ratio:", "provider: tesseract", "port: \"8888\""} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
