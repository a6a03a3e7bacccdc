package tea

import (
	"context"
	"sync"
)

// MemStore keeps teas in creation order in a slice. nextID only ever
// moves forward, so deleted IDs stay retired.
type MemStore struct {
	mu     sync.RWMutex
	teas   []Tea
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(_ context.Context, name string, price float64) (Tea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Tea{ID: s.nextID, Name: name, Price: price}
	s.nextID++
	s.teas = append(s.teas, t)
	return t, nil
}

func (s *MemStore) List(_ context.Context) ([]Tea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tea, len(s.teas))
	copy(out, s.teas)
	return out, nil
}

func (s *MemStore) Get(_ context.Context, id int64) (Tea, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teas {
		if t.ID == id {
			return t, true, nil
		}
	}
	return Tea{}, false, nil
}

func (s *MemStore) Update(_ context.Context, id int64, name string, price float64) (Tea, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teas {
		if s.teas[i].ID == id {
			s.teas[i].Name = name
			s.teas[i].Price = price
			return s.teas[i], true, nil
		}
	}
	return Tea{}, false, nil
}

func (s *MemStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teas {
		if s.teas[i].ID == id {
			s.teas = append(s.teas[:i], s.teas[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
