package server

import (
	"testing"
	"time"
)

func TestRegisterAndUnregister(t *testing.T) {
	s := NewServer(3)
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if s.Clients() != 2 {
		t.Fatalf("clients = %d, want 2", s.Clients())
	}

	s.UnregisterClient(a.ID)
	if _, ok := <-a.EventsCh; ok {
		t.Fatalf("events channel should be closed after unregister")
	}
	s.UnregisterClient(a.ID) // second call is harmless
	if s.Clients() != 1 {
		t.Fatalf("clients = %d, want 1", s.Clients())
	}
}

func TestReportFinishRanksFastestFirst(t *testing.T) {
	s := NewServer(3)
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	if rank := s.ReportFinish(a.ID, 30*time.Second); rank != 1 {
		t.Fatalf("first finish rank = %d, want 1", rank)
	}
	if rank := s.ReportFinish(b.ID, 20*time.Second); rank != 1 {
		t.Fatalf("faster finish rank = %d, want 1", rank)
	}
	if rank := s.ReportFinish(a.ID, 20*time.Second); rank != 2 {
		t.Fatalf("tie should rank after the earlier finish, got %d", rank)
	}
	if rank := s.ReportFinish(b.ID, 40*time.Second); rank != 0 {
		t.Fatalf("slowest finish on a full board rank = %d, want 0", rank)
	}

	top := s.TopTimes()
	if len(top) != 3 {
		t.Fatalf("board has %d entries, want 3", len(top))
	}
	want := []struct {
		name string
		d    time.Duration
	}{{"bob", 20 * time.Second}, {"alice", 20 * time.Second}, {"alice", 30 * time.Second}}
	for i, w := range want {
		if top[i].Username != w.name || top[i].Elapsed != w.d {
			t.Fatalf("board[%d] = %+v, want %s %v", i, top[i], w.name, w.d)
		}
	}
}

func TestReportFinishNotifiesOthers(t *testing.T) {
	s := NewServer(5)
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	s.ReportFinish(a.ID, time.Second)

	select {
	case ev := <-b.EventsCh:
		if ev.Type != EventLeaderboardChanged {
			t.Fatalf("event = %v", ev.Type)
		}
	default:
		t.Fatalf("bob was not notified")
	}
	select {
	case ev := <-a.EventsCh:
		t.Fatalf("reporter should not be notified, got %v", ev.Type)
	default:
	}
}

func TestReportFinishUnknownClient(t *testing.T) {
	s := NewServer(5)
	if rank := s.ReportFinish("nobody", time.Second); rank != 0 {
		t.Fatalf("rank = %d, want 0", rank)
	}
	if len(s.TopTimes()) != 0 {
		t.Fatalf("unknown client reached the board")
	}
}

func TestShutdownWaitsForClients(t *testing.T) {
	s := NewServer(5)
	h := s.RegisterClient("alice")

	go func() {
		for ev := range h.EventsCh {
			if ev.Type == EventServerShutdown {
				s.UnregisterClient(h.ID)
				return
			}
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > 2*time.Second {
		t.Fatalf("shutdown did not return once clients left")
	}
	if s.Clients() != 0 {
		t.Fatalf("clients = %d after shutdown", s.Clients())
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := NewServer(5)
	s.RegisterClient("stuck")

	start := time.Now()
	s.Shutdown(100 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("shutdown returned early after %v", elapsed)
	}
}
