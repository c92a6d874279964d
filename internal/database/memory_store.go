package database

import (
	"database/sql"
	"sync"
	"time"

	"coleta-portal/internal/models"
)

// MemoryMoradorStore is an in-memory MoradorStore used by handler
// tests and local experiments. Mirrors the Postgres semantics,
// including sql.ErrNoRows on misses.
type MemoryMoradorStore struct {
	mu     sync.RWMutex
	nextID int
	byUser map[string]*models.Morador
}

func NewMemoryMoradorStore() *MemoryMoradorStore {
	return &MemoryMoradorStore{
		nextID: 1,
		byUser: make(map[string]*models.Morador),
	}
}

func (s *MemoryMoradorStore) GetByUserID(userID string) (*models.Morador, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byUser[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryMoradorStore) GetByID(id int) (*models.Morador, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.byUser {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemoryMoradorStore) Create(m *models.Morador) (*models.Morador, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	m.ID = s.nextID
	s.nextID++
	m.CreatedAt = now
	m.UpdatedAt = now

	cp := *m
	s.byUser[m.UserID] = &cp
	return m, nil
}

func (s *MemoryMoradorStore) Update(m *models.Morador) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, existing := range s.byUser {
		if existing.ID == m.ID {
			m.UserID = userID
			m.UpdatedAt = time.Now().Unix()
			cp := *m
			s.byUser[userID] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *MemoryMoradorStore) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUser[userID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.byUser, userID)
	return nil
}

func (s *MemoryMoradorStore) ListWithFCMTokens() ([]models.Morador, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Morador
	for _, m := range s.byUser {
		if m.FCMToken.Valid && m.FCMToken.String != "" && m.HasCoordinates() {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *MemoryMoradorStore) SetFCMToken(userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byUser[userID]
	if !ok {
		return sql.ErrNoRows
	}
	m.FCMToken = sql.NullString{String: token, Valid: true}
	m.UpdatedAt = time.Now().Unix()
	return nil
}
