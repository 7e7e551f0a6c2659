// Package audiostore maps opaque ids to synthesized audio files.
//
// Entries are inserted once per synthesized utterance and looked up by the
// audio-serving endpoint. Nothing is ever evicted: the store lives exactly
// as long as the process, which bounds its growth to the number of replies
// synthesized in one run. Known limitation, accepted deliberately — a
// long-lived server with TTS enabled accumulates one temp file per reply.
package audiostore

import (
	"sync"

	"github.com/google/uuid"
)

// Store is a concurrency-safe id -> audio file path mapping.
type Store struct {
	mu    sync.RWMutex
	files map[string]string
}

// New creates an empty store.
func New() *Store {
	return &Store{files: make(map[string]string)}
}

// Put registers an audio file and returns its new id.
func (s *Store) Put(path string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.files[id] = path
	s.mu.Unlock()
	return id
}

// Get returns the file path for an id.
func (s *Store) Get(id string) (string, bool) {
	s.mu.RLock()
	path, ok := s.files[id]
	s.mu.RUnlock()
	return path, ok
}

// Len returns the number of stored handles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
