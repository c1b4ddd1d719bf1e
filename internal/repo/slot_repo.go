// Package repo implements the data persistence layer for the SQLite storage
// backend, backed by GORM. This file provides repository functions for the
// Slot model: a tiny key-value table whose rows hold whole serialized
// collections.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only reads and
// writes of raw bytes.
//
// Error semantics:
//   - When a slot does not exist, GetSlot returns ErrNotFound.
//   - On DB errors (missing table, connectivity issues, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience.
var ErrNotFound = gorm.ErrRecordNotFound

// GetSlot returns the stored value for key, or ErrNotFound.
func GetSlot(ctx context.Context, db *gorm.DB, key string) (*domain.Slot, error) {
	var s domain.Slot
	err := db.WithContext(ctx).
		Where("key = ?", key).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// PutSlot inserts or replaces the value stored under key in one statement.
// UpdatedAt is set to the current UTC time.
func PutSlot(ctx context.Context, db *gorm.DB, key string, value []byte) (*domain.Slot, error) {
	s := &domain.Slot{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(s).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}
