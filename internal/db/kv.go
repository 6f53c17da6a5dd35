package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the opaque string store the tracker persists into
type KV interface {
	// Get returns the stored value; ok is false when the key was never set
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Entry is one row of the key/value table
type Entry struct {
	Key       string    `gorm:"primaryKey;column:entry_key"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_entries"
}

// SQLiteKV stores entries in a SQLite table through gorm
type SQLiteKV struct {
	db *gorm.DB
}

func NewSQLiteKV(gdb *gorm.DB) *SQLiteKV {
	return &SQLiteKV{db: gdb}
}

func (kv *SQLiteKV) Get(key string) (string, bool, error) {
	var entry Entry
	err := kv.db.Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (kv *SQLiteKV) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	return kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
