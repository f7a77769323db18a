package historystore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	dbmodels "promptsync-backend/models/db"
)

// MemoryStore история в памяти, для тестов
type MemoryStore struct {
	mu   sync.Mutex
	recs []dbmodels.PromptHistory
	// FailCreate если задан, Create возвращает эту ошибку
	FailCreate error
}

func NewMemoryInstance() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Create(ctx context.Context, rec dbmodels.PromptHistory) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate != nil {
		return "", m.FailCreate
	}
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = rec.CreatedAt
	m.recs = append(m.recs, rec)
	return rec.ID, nil
}

func (m *MemoryStore) List(ctx context.Context, userID, search string, limit int) ([]dbmodels.PromptHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	search = strings.ToLower(search)
	list := []dbmodels.PromptHistory{}
	for _, rec := range m.recs {
		if rec.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(rec.LazyPrompt), search) {
			continue
		}
		list = append(list, rec)
	}
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, userID, id string) (*dbmodels.PromptHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.recs {
		if rec.ID == id && rec.UserID == userID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for idx, rec := range m.recs {
		if rec.ID == id && rec.UserID == userID {
			m.recs = append(m.recs[:idx], m.recs[idx+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Len количество записей всех пользователей
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}
