package repository

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Snapshot is one persisted aggregate: the whole collection serialized as a
// single JSON document. Every mutation overwrites the document, so the row
// always holds a complete snapshot of its collection.
type Snapshot struct {
	Collection string         `gorm:"primaryKey;size:32"`
	Data       datatypes.JSON `gorm:"not null"`
	UpdatedAt  time.Time
}

const (
	collectionAssets = "assets"
	collectionUsers  = "users"
	collectionLogs   = "logs"
	collectionConfig = "config"
)

// Open connects to the local snapshot database and migrates the snapshot
// table. The DSN is a sqlite file path (or ":memory:" in tests).
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, err
	}
	return db, nil
}

// loadSnapshot unmarshals a collection snapshot into out. A missing row is
// not an error: out is left untouched and found=false is returned.
func loadSnapshot(db *gorm.DB, collection string, out any) (bool, error) {
	var snap Snapshot
	err := db.First(&snap, "collection = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		log.Printf("load snapshot %s error: %v", collection, err)
		return false, errors.New("failed to load " + collection)
	}
	if err := json.Unmarshal(snap.Data, out); err != nil {
		log.Printf("decode snapshot %s error: %v", collection, err)
		return false, errors.New("corrupt " + collection + " snapshot")
	}
	return true, nil
}

// saveSnapshot overwrites the whole collection document.
func saveSnapshot(db *gorm.DB, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode snapshot %s error: %v", collection, err)
		return errors.New("failed to encode " + collection)
	}
	snap := Snapshot{Collection: collection, Data: data, UpdatedAt: time.Now()}
	if err := db.Save(&snap).Error; err != nil {
		log.Printf("save snapshot %s error: %v", collection, err)
		return errors.New("failed to save " + collection)
	}
	return nil
}
