package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-delivery-dashboard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm keeps entries in the kv_entries table of the main database.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, key string, dst any) error {
	var entry models.KVEntry
	err := g.db.WithContext(ctx).First(&entry, "kv_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: get %q: %w", key, err)
	}
	return json.Unmarshal([]byte(entry.Value), dst)
}

func (g *Gorm) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := models.KVEntry{Key: key, Value: string(raw)}
	err = g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := g.db.WithContext(ctx).Where("kv_key IN ?", keys).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	return nil
}

// PurgeExpired removes entries not written for longer than olderThan and
// reports how many were dropped.
func (g *Gorm) PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	res := g.db.WithContext(ctx).Where("updated_at < ?", time.Now().Add(-olderThan)).Delete(&models.KVEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("store: purge: %w", res.Error)
	}
	return res.RowsAffected, nil
}
