package waitliststore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "promptsync-backend/models/db"
)

type Provider interface {
	// Create возвращает created = false, если email уже есть в списке
	Create(ctx context.Context, rec dbmodels.WaitlistEntry) (entry dbmodels.WaitlistEntry, created bool, err error)
	GetByEmail(ctx context.Context, email string) (*dbmodels.WaitlistEntry, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.WaitlistEntry) (dbmodels.WaitlistEntry, bool, error) {
	tx := i.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&rec)
	if tx.Error != nil {
		return dbmodels.WaitlistEntry{}, false, tx.Error
	}
	if tx.RowsAffected == 1 {
		return rec, true, nil
	}
	existing, err := i.GetByEmail(ctx, rec.Email)
	if err != nil {
		return dbmodels.WaitlistEntry{}, false, err
	}
	if existing == nil {
		return dbmodels.WaitlistEntry{}, false, errors.New("запись листа ожидания не найдена после конфликта")
	}
	return *existing, false, nil
}

func (i impl) GetByEmail(ctx context.Context, email string) (*dbmodels.WaitlistEntry, error) {
	rec := dbmodels.WaitlistEntry{}
	err := i.db.
		WithContext(ctx).
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// MemoryStore лист ожидания в памяти, для тестов
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]dbmodels.WaitlistEntry
}

func NewMemoryInstance() *MemoryStore {
	return &MemoryStore{recs: map[string]dbmodels.WaitlistEntry{}}
}

func (m *MemoryStore) Create(ctx context.Context, rec dbmodels.WaitlistEntry) (dbmodels.WaitlistEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.recs[rec.Email]; ok {
		return existing, false, nil
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	m.recs[rec.Email] = rec
	return rec, true, nil
}

func (m *MemoryStore) GetByEmail(ctx context.Context, email string) (*dbmodels.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[email]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
