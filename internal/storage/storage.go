package storage

import (
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/bookmeta/internal/models"
)

type SessionStore struct {
	sessions map[string]*models.ExtractionSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.ExtractionSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.ExtractionSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.ExtractionSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// List returns sessions newest first; ties fall back to ID order.
func (s *SessionStore) List() []*models.ExtractionSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.ExtractionSession, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Delete removes a session and reports whether it existed.
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}
