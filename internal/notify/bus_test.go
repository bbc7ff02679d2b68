package notify

import (
	"testing"

	"bookbazaar/pkg/domain"
)

func TestPublishAndDrainKeepOrder(t *testing.T) {
	b := New(8)
	b.Info("one")
	b.Success("two")
	b.Error("three")

	got := b.Drain()
	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Message != "one" || got[2].Message != "three" {
		t.Fatalf("order lost: %+v", got)
	}
	if got[0].Level != domain.LevelInfo || got[1].Level != domain.LevelSuccess || got[2].Level != domain.LevelError {
		t.Fatalf("unexpected levels: %+v", got)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("expected unique ids: %+v", got)
	}
	if rest := b.Drain(); len(rest) != 0 {
		t.Fatalf("drain must empty the bus, got %d left", len(rest))
	}
}

func TestPublishNeverBlocksAndDropsOldest(t *testing.T) {
	b := New(2)
	b.Info("a")
	b.Info("b")
	b.Info("c") // overflow: "a" is dropped

	got := b.Drain()
	if len(got) != 2 {
		t.Fatalf("expected buffer-sized backlog, got %d", len(got))
	}
	if got[0].Message != "b" || got[1].Message != "c" {
		t.Fatalf("expected oldest dropped, got %+v", got)
	}
}

func TestChannelReceiveSeesPublished(t *testing.T) {
	b := New(4)
	b.Error("boom")
	select {
	case n := <-b.C():
		if n.Level != domain.LevelError || n.Message != "boom" {
			t.Fatalf("unexpected notification: %+v", n)
		}
	default:
		t.Fatalf("expected a buffered notification")
	}
}
