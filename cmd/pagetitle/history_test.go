package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nao1215/pagetitle/internal/history"
	"github.com/nao1215/pagetitle/internal/model"
)

// TestHistoryCmd tests the history command.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--data-dir", t.TempDir()})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("failed to run command: %v", err)
		}
		if !strings.Contains(out.String(), "No lookup history yet.") {
			t.Errorf("expected empty-history message, got %q", out.String())
		}
	})

	t.Run("lists recorded lookups", func(t *testing.T) {
		t.Parallel()

		dataDir := t.TempDir()

		db, err := history.Open(dataDir, history.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}

		withTitle := model.NewResult("http://example.com")
		withTitle.SetTitle("Example")
		withTitle.StatusCode = 200

		withoutTitle := model.NewResult("http://bare.example.org")
		withoutTitle.StatusCode = 200

		for _, r := range []*model.Result{withTitle, withoutTitle} {
			if err := db.Save(context.Background(), r); err != nil {
				t.Fatalf("failed to save result: %v", err)
			}
		}
		if err := db.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}

		cmd := NewHistoryCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--data-dir", dataDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		got := out.String()
		if !strings.Contains(got, "http://example.com") || !strings.Contains(got, "Example") {
			t.Errorf("expected titled lookup in output, got %q", got)
		}
		if !strings.Contains(got, "http://bare.example.org") || !strings.Contains(got, noTitlePlaceholder) {
			t.Errorf("expected no-title placeholder in output, got %q", got)
		}
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		dataDir := t.TempDir()

		db, err := history.Open(dataDir, history.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}

		for _, target := range []string{"http://one.example.com", "http://two.example.com"} {
			r := model.NewResult(target)
			r.SetTitle("Title of " + target)
			if err := db.Save(context.Background(), r); err != nil {
				t.Fatalf("failed to save result: %v", err)
			}
		}
		if err := db.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}

		cmd := NewHistoryCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--data-dir", dataDir, "http://one.example.com"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("failed to run command: %v", err)
		}

		got := out.String()
		if !strings.Contains(got, "http://one.example.com") {
			t.Errorf("expected filtered URL in output, got %q", got)
		}
		if strings.Contains(got, "http://two.example.com") {
			t.Errorf("expected other URL to be filtered out, got %q", got)
		}
	})
}
