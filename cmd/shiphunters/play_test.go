package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/vovakirdan/shiphunters/internal/config"
	"github.com/vovakirdan/shiphunters/internal/platform/console"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
)

func TestWithJournalClosesStoreOnError(t *testing.T) {
	store := journalStore(t)
	theme := render.ClassicTheme(nil)
	ttyGone := errors.New("tty gone")

	session := consoleSession{
		cfg:   config.Default(),
		theme: theme,
		input: console.NewInput(iotest.ErrReader(ttyGone), io.Discard, theme),
		out:   io.Discard,
		store: store,
	}
	err := withJournal(store, func() error {
		return session.run(context.Background())
	})
	if !errors.Is(err, ttyGone) {
		t.Fatalf("withJournal() error = %v, want %v", err, ttyGone)
	}

	if _, err := store.RecentMatches(1); err == nil {
		t.Error("store should be closed once the session failed")
	}
}

func TestWithJournalNilStore(t *testing.T) {
	called := false
	err := withJournal(nil, func() error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("withJournal(nil) = %v, called = %v", err, called)
	}
}

func TestEndOfInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"eof", io.EOF, false},
		{"interrupted", context.Canceled, false},
		{"other", errors.New("tty gone"), true},
	}
	for _, tt := range tests {
		if got := endOfInput(tt.err) != nil; got != tt.want {
			t.Errorf("%s: endOfInput() returned error = %v, want %v", tt.name, got, tt.want)
		}
	}
}
