package crazyeights

import (
	"fmt"
	"sync"
)

// GameStore maps room ids to owned game rooms. It replaces the
// process-wide "current game" singleton of earlier servers.
type GameStore interface {
	FindRoom(id string) (*Room, bool)
	AddRoom(room *Room) error
	RemoveRoom(id string)
}

// InMemoryGameStore holds rooms in a map
type InMemoryGameStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{rooms: map[string]*Room{}}
}

// FindRoom finds a room by id
func (s *InMemoryGameStore) FindRoom(id string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

// AddRoom registers a room under its id
func (s *InMemoryGameStore) AddRoom(room *Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[room.ID()]; exists {
		return fmt.Errorf("room with id %s already exists", room.ID())
	}
	s.rooms[room.ID()] = room
	return nil
}

// RemoveRoom drops a room from the store
func (s *InMemoryGameStore) RemoveRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}
