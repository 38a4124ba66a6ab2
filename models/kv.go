package models

import "time"

// KVEntry backs the durable key-value store in the main database.
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;type:varchar(191)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

func (KVEntry) TableName() string { return "kv_entries" }
