package usagestore

import (
	"context"
	"sync"

	"promptsync-backend/models"
)

// MemoryStore хранилище счётчиков в памяти, для тестов и локального запуска
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]models.UsageRecord
	// BeforeSwap вызывается перед каждой попыткой CompareAndSwap
	BeforeSwap func(userID string)
}

func NewMemoryInstance() *MemoryStore {
	return &MemoryStore{recs: map[string]models.UsageRecord{}}
}

func (m *MemoryStore) Put(rec models.UsageRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.UserID] = rec
}

func (m *MemoryStore) Get(ctx context.Context, userID string) (*models.UsageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryStore) CompareAndSwap(ctx context.Context, next models.UsageRecord, expectedVersion int64) (bool, error) {
	if m.BeforeSwap != nil {
		m.BeforeSwap(next.UserID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.recs[next.UserID]
	if !ok || cur.Version != expectedVersion {
		return false, nil
	}
	next.Tier = cur.Tier
	m.recs[next.UserID] = next
	return true, nil
}
