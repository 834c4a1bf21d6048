// Package server tracks connected game sessions, keeps the best finish times,
// and coordinates shutdown across them.
package server

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples front ends from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID string)
	ReportFinish(clientID string, elapsed time.Duration) (rank int)
	TopTimes() []TopTimeEntry
}

// Server is the session hub shared by all front ends of one process.
type Server struct {
	mu      sync.RWMutex
	clients map[string]*ClientHandle
	top     []TopTimeEntry
	limit   int
	seq     uint64
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's registration with the server.
type ClientHandle struct {
	ID       string
	Username string
	EventsCh chan ClientEvent // Events sent to the client
}

// TopTimeEntry is one line of the leaderboard.
type TopTimeEntry struct {
	Username string
	Elapsed  time.Duration
	seq      uint64 // Earlier finishes win ties
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventLeaderboardChanged
)

// NewServer creates a hub whose leaderboard keeps the best limit times.
func NewServer(limit int) *Server {
	if limit < 0 {
		limit = 0
	}
	return &Server{
		clients: make(map[string]*ClientHandle),
		limit:   limit,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       uuid.NewString(),
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.mu.Lock()
	s.clients[handle.ID] = handle
	s.mu.Unlock()

	return handle
}

// UnregisterClient removes a client and closes its event channel.
func (s *Server) UnregisterClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.clients[clientID]; ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
}

// Clients returns the number of registered clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// ReportFinish records a finish time and returns its 1-based leaderboard rank,
// or 0 if it did not make the board. Other clients are told the board changed.
func (s *Server) ReportFinish(clientID string, elapsed time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok || s.limit == 0 {
		return 0
	}

	s.seq++
	entry := TopTimeEntry{Username: handle.Username, Elapsed: elapsed, seq: s.seq}
	pos, _ := slices.BinarySearchFunc(s.top, entry, compareEntries)
	if pos >= s.limit {
		return 0
	}
	s.top = slices.Insert(s.top, pos, entry)
	if len(s.top) > s.limit {
		s.top = s.top[:s.limit]
	}

	for id, h := range s.clients {
		if id == clientID {
			continue
		}
		select {
		case h.EventsCh <- ClientEvent{Type: EventLeaderboardChanged}:
		default:
		}
	}
	return pos + 1
}

func compareEntries(a, b TopTimeEntry) int {
	switch {
	case a.Elapsed < b.Elapsed:
		return -1
	case a.Elapsed > b.Elapsed:
		return 1
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// TopTimes returns a copy of the leaderboard, fastest first.
func (s *Server) TopTimes() []TopTimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.top)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Clients() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
