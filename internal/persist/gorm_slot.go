package persist

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/moreply-backend/internal/repo"
)

// GormSlot stores values in the SQLite "slots" table through the repo
// package. The table must exist (see repo.AutoMigrate).
type GormSlot struct {
	DB *gorm.DB
}

// NewGormSlot returns a Slot backed by db.
func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{DB: db}
}

// Get implements Slot.
func (g *GormSlot) Get(ctx context.Context, key string) ([]byte, error) {
	s, err := repo.GetSlot(ctx, g.DB, key)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return s.Value, nil
}

// Put implements Slot.
func (g *GormSlot) Put(ctx context.Context, key string, value []byte) error {
	_, err := repo.PutSlot(ctx, g.DB, key, value)
	return err
}

// Backend implements Slot.
func (g *GormSlot) Backend() string { return "sqlite" }
