package domain

import "time"

// Slot is one named value in the key-value table used by the SQLite
// backend. The template collection lives in a single row whose Value holds
// the JSON array of templates.
type Slot struct {
	Key       string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Value     []byte    `gorm:"type:BLOB NOT NULL"`
	UpdatedAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Slot) TableName() string { return "slots" }
