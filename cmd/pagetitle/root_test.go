package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/pagetitle/internal/model"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "pagetitle <url>" {
			t.Errorf("expected use 'pagetitle <url>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		hasHistory := false
		hasInit := false
		hasVersion := false
		for _, sub := range cmd.Commands() {
			switch sub.Use {
			case "history [url]":
				hasHistory = true
			case "init":
				hasInit = true
			case "version":
				hasVersion = true
			}
		}
		if !hasHistory {
			t.Error("expected history subcommand")
		}
		if !hasInit {
			t.Error("expected init subcommand")
		}
		if !hasVersion {
			t.Error("expected version subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// runLookupCommand executes the root command against the given URL and
// returns the captured standard output.
func runLookupCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--no-history"))

	err := cmd.Execute()
	return out.String(), err
}

// TestRootCmdLookup tests the end-to-end fetch and output behavior.
func TestRootCmdLookup(t *testing.T) {
	t.Parallel()

	t.Run("prints title line", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head><title>Example</title></head><body></body></html>`))
		}))
		defer server.Close()

		out, err := runLookupCommand(t, server.URL)
		if err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		want := "The title for " + server.URL + " was Example\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("prints no-title line", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head></head><body><p>no title here</p></body></html>`))
		}))
		defer server.Close()

		out, err := runLookupCommand(t, server.URL)
		if err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		want := server.URL + " had no title\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("first title wins", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head><title>First</title><title>Second</title></head></html>`))
		}))
		defer server.Close()

		out, err := runLookupCommand(t, server.URL)
		if err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		if !strings.Contains(out, "was First") {
			t.Errorf("expected first title in output, got %q", out)
		}
		if strings.Contains(out, "Second") {
			t.Errorf("expected second title to be ignored, got %q", out)
		}
	})

	t.Run("decodes entities", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head><title>A &amp; B</title></head></html>`))
		}))
		defer server.Close()

		out, err := runLookupCommand(t, server.URL)
		if err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		want := "The title for " + server.URL + " was A & B\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head><title>Example</title></head></html>`))
		}))
		defer server.Close()

		out, err := runLookupCommand(t, server.URL, "--json")
		if err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		var result model.Result
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("failed to decode json output: %v", err)
		}
		if result.Title != "Example" {
			t.Errorf("expected title 'Example', got %q", result.Title)
		}
	})

	t.Run("non-success status fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer server.Close()

		if _, err := runLookupCommand(t, server.URL); err == nil {
			t.Error("expected error for non-success status")
		}
	})

	t.Run("conflicting formats fail before fetch", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer server.Close()

		if _, err := runLookupCommand(t, server.URL, "--json", "--markdown"); err == nil {
			t.Error("expected error for conflicting formats")
		}
		if hits.Load() != 0 {
			t.Errorf("expected no fetch attempt, got %d requests", hits.Load())
		}
	})
}

// TestRootCmdMissingArgument tests that a missing URL fails before any
// network activity.
func TestRootCmdMissingArgument(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer server.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when no URL is supplied")
	}
	if hits.Load() != 0 {
		t.Errorf("expected no fetch attempt, got %d requests", hits.Load())
	}
}
