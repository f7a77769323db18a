package usersstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	dbmodels "promptsync-backend/models/db"
)

// MemoryStore профили в памяти, для тестов
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]dbmodels.UserProfile
}

func NewMemoryInstance() *MemoryStore {
	return &MemoryStore{recs: map[string]dbmodels.UserProfile{}}
}

func (m *MemoryStore) Create(ctx context.Context, rec dbmodels.UserProfile) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.Email == rec.Email {
			return "", ErrEmailTaken
		}
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	m.recs[rec.ID] = rec
	return rec.ID, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, userID string) (*dbmodels.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*dbmodels.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.recs {
		if rec.Email == email {
			return &rec, nil
		}
	}
	return nil, nil
}

// Update поддерживает только поля, которые меняет приложение
func (m *MemoryStore) Update(ctx context.Context, userID string, updMap map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return nil
	}
	if v, ok := updMap["last_login"].(time.Time); ok {
		rec.LastLogin = v
	}
	if v, ok := updMap["name"].(string); ok {
		rec.Name = v
	}
	m.recs[userID] = rec
	return nil
}
