// Package dbtest provides an in-memory db.Store for tests
package dbtest

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/cbsinteractive/edl/db"
)

// ErrUnavailable is returned by a failing FakeStore
var ErrUnavailable = errors.New("store unavailable")

// FakeStore keeps JSON documents in memory
type FakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
	fail bool
}

// NewFakeStore returns an empty store. When fail is set every call
// returns ErrUnavailable.
func NewFakeStore(fail bool) *FakeStore {
	return &FakeStore{data: map[string][]byte{}, fail: fail}
}

func (s *FakeStore) Get(key string, dst interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return ErrUnavailable
	}
	data, ok := s.data[key]
	if !ok {
		return db.ErrNotFound
	}
	return json.Unmarshal(data, dst)
}

func (s *FakeStore) Put(key string, val interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return ErrUnavailable
	}
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	s.data[key] = data
	return nil
}

// Keys returns the number of stored documents
func (s *FakeStore) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
