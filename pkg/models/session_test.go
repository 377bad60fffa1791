package models

import (
	"fmt"
	"testing"
)

func TestNewSessionIsIdle(t *testing.T) {
	sess := NewSession("s1", "english", "hindi")

	if sess.Status != StatusIdle {
		t.Errorf("status = %q, want idle", sess.Status)
	}
	if sess.MaxHistoryItems != DefaultMaxHistoryItems {
		t.Errorf("max history = %d, want %d", sess.MaxHistoryItems, DefaultMaxHistoryItems)
	}
	if len(sess.History) != 0 {
		t.Errorf("history length = %d, want 0", len(sess.History))
	}
}

func TestAddHistoryPrependsAndBounds(t *testing.T) {
	sess := NewSession("s1", "english", "hindi")

	for i := 0; i < DefaultMaxHistoryItems+5; i++ {
		sess.AddHistory(HistoryItem{Original: fmt.Sprintf("item %d", i)})
	}

	if len(sess.History) != DefaultMaxHistoryItems {
		t.Fatalf("history length = %d, want %d", len(sess.History), DefaultMaxHistoryItems)
	}
	if sess.History[0].Original != fmt.Sprintf("item %d", DefaultMaxHistoryItems+4) {
		t.Errorf("history[0] = %q, want the newest item", sess.History[0].Original)
	}
	last := sess.History[len(sess.History)-1].Original
	if last != fmt.Sprintf("item %d", 5) {
		t.Errorf("history[last] = %q, want the oldest surviving item", last)
	}
}

func TestAddHistoryRespectsCustomBound(t *testing.T) {
	sess := NewSession("s1", "english", "hindi")
	sess.MaxHistoryItems = 3

	for i := 0; i < 5; i++ {
		sess.AddHistory(HistoryItem{Original: fmt.Sprintf("item %d", i)})
	}

	if len(sess.History) != 3 {
		t.Errorf("history length = %d, want 3", len(sess.History))
	}
}
