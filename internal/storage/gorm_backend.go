// internal/storage/gorm_backend.go
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type kvEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_entries" }

// GormBackend persists the key-value state in a single sqlite table. The
// deployment model is a single-user local store, so one file database is
// enough; the byte budget keeps the store from growing without bound.
type GormBackend struct {
	db       *gorm.DB
	maxBytes int64
}

func OpenGormBackend(path string, maxBytes int64, logLevel string) (*GormBackend, error) {
	gormLogLevel := logger.Silent
	if logLevel == "info" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage database: %w", err)
	}

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage schema: %w", err)
	}

	return &GormBackend{db: db, maxBytes: maxBytes}, nil
}

func (b *GormBackend) Load(key string) ([]byte, bool, error) {
	var entry kvEntry
	err := b.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (b *GormBackend) Save(key string, value []byte) error {
	if b.maxBytes > 0 {
		var others int64
		err := b.db.Model(&kvEntry{}).
			Where("key <> ?", key).
			Select("COALESCE(SUM(LENGTH(value)), 0)").
			Scan(&others).Error
		if err != nil {
			return err
		}
		if others+int64(len(value)) > b.maxBytes {
			return ErrQuotaExceeded
		}
	}

	entry := kvEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (b *GormBackend) Delete(key string) error {
	return b.db.Delete(&kvEntry{}, "key = ?", key).Error
}

func (b *GormBackend) Keys(prefix string) ([]string, error) {
	var keys []string
	err := b.db.Model(&kvEntry{}).
		Where("key LIKE ?", prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Close releases the underlying sqlite handle.
func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
