package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/lottopick/internal/combo"
	"github.com/verte-zerg/lottopick/internal/config"
	"github.com/verte-zerg/lottopick/internal/frequency"
)

const sampleCSV = "number,frequency\n1,5\n2,3\n3,3\n4,1\n"

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("NO_COLOR", "1")
	path := filepath.Join(dir, "freq.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func writeConfig(t *testing.T, data string) {
	t.Helper()
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPickFromFile(t *testing.T) {
	csvPath := setupEnv(t)
	out, err := run(t, "--file", csvPath, "--pool", "3", "--select", "2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !containsAll(out, []string{"Pool: 3 least frequent numbers", "4 2 3", "Games: 3 (choose 2)", "1. 2 4    2. 3 4    3. 2 3"}) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPickMostShorthand(t *testing.T) {
	csvPath := setupEnv(t)
	out, err := run(t, "--file", csvPath, "--pool", "2", "--select", "2", "--most")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !containsAll(out, []string{"Pool: 2 most frequent numbers", "1 2", "1. 1 2"}) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPickDirectionConflicts(t *testing.T) {
	csvPath := setupEnv(t)
	if _, err := run(t, "--file", csvPath, "--most", "--least"); err == nil {
		t.Fatalf("expected --most and --least to conflict")
	}
	if _, err := run(t, "--file", csvPath, "--direction", "most", "--least"); err == nil {
		t.Fatalf("expected --direction and --least to conflict")
	}
	if _, err := run(t, "--file", csvPath, "--direction", "sideways"); err == nil {
		t.Fatalf("expected unknown direction to fail")
	}
}

func TestPickConfigPrecedence(t *testing.T) {
	csvPath := setupEnv(t)
	writeConfig(t, "[pick]\npool = 3\nselect = 2\ndirection = \"most\"\n")

	out, err := run(t, "--file", csvPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !containsAll(out, []string{"Pool: 3 most frequent numbers", "1 2 3", "Games: 3 (choose 2)"}) {
		t.Fatalf("expected config values, got:\n%s", out)
	}

	out, err = run(t, "--file", csvPath, "--select", "3", "--least")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !containsAll(out, []string{"Pool: 3 least frequent numbers", "Games: 1 (choose 3)", "1. 2 3 4"}) {
		t.Fatalf("expected flags to override config, got:\n%s", out)
	}
}

func TestPickValidationErrors(t *testing.T) {
	csvPath := setupEnv(t)
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"--pool", "3", "--select", "5"}, combo.ErrInvalidSelectionSize},
		{[]string{"--pool", "0"}, nil},
		{[]string{"--select", "0"}, combo.ErrInvalidSelectionSize},
		{[]string{"--pool", "6", "--select", "5"}, combo.ErrInvalidSelectionSize},
		{[]string{"--pool", "4", "--select", "2", "--max-games", "3"}, combo.ErrSelectionTooLarge},
	}
	for _, tc := range cases {
		_, err := run(t, append([]string{"--file", csvPath}, tc.args...)...)
		if err == nil {
			t.Fatalf("%v: expected error", tc.args)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.args, tc.want, err)
		}
	}
}

func TestPickMalformedInput(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("1,2\n5,-1\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	_, err := run(t, "--file", path)
	if !errors.Is(err, frequency.ErrNegativeFrequency) {
		t.Fatalf("expected negative frequency error, got %v", err)
	}
}

func TestPickRequiresInput(t *testing.T) {
	setupEnv(t)
	if _, err := run(t); err == nil || !strings.Contains(err.Error(), "--file or --url") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestPickShowsTable(t *testing.T) {
	csvPath := setupEnv(t)
	out, err := run(t, "--file", csvPath, "--pool", "3", "--select", "3", "--table")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "Number Frequency\n") {
		t.Fatalf("expected frequency table first, got:\n%s", out)
	}
}

func TestFetchWritesCSV(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<table><tr><th>Ball</th><th>Count</th></tr><tr><td>7</td><td>12</td></tr><tr><td>9</td><td>4</td></tr></table>`))
	}))
	t.Cleanup(srv.Close)

	outPath := filepath.Join(t.TempDir(), "nested", "freq.csv")
	if _, err := run(t, "fetch", "--url", srv.URL, "--out", outPath); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "7,12\n9,4\n" {
		t.Fatalf("unexpected csv: %q", data)
	}

	out, err := run(t, "fetch", "--url", srv.URL)
	if err != nil {
		t.Fatalf("fetch to stdout: %v", err)
	}
	if out != "7,12\n9,4\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestPickFromURL(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<table><tr><td>1</td><td>5</td></tr><tr><td>2</td><td>3</td></tr><tr><td>3</td><td>3</td></tr><tr><td>4</td><td>1</td></tr></table>`))
	}))
	t.Cleanup(srv.Close)
	writeConfig(t, "[pick]\nurl = \""+srv.URL+"\"\n")

	out, err := run(t, "--pool", "3", "--select", "2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "1. 2 4    2. 3 4    3. 2 3") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	setupEnv(t)
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Pick.Pool != nil {
		t.Fatalf("expected commented template to set nothing")
	}
}

func TestPickMaxGamesZeroKeepsCeiling(t *testing.T) {
	setupEnv(t)
	var b strings.Builder
	for i := 1; i <= 60; i++ {
		fmt.Fprintf(&b, "%d,1\n", i)
	}
	path := filepath.Join(t.TempDir(), "wide.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	_, err := run(t, "--file", path, "--pool", "60", "--select", "30", "--max-games", "0")
	if !errors.Is(err, combo.ErrSelectionTooLarge) {
		t.Fatalf("expected ErrSelectionTooLarge, got %v", err)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
