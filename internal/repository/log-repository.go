package repository

import (
	"github.com/SundayYogurt/inventory_service/internal/domain"
	"gorm.io/gorm"
)

type LogRepository interface {
	LoadAll() ([]domain.Log, error)
	// Append adds one entry to the end of the log collection and persists
	// the whole snapshot. Existing entries are never rewritten.
	Append(entry domain.Log) error
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) LoadAll() ([]domain.Log, error) {
	logs := []domain.Log{}
	if _, err := loadSnapshot(r.db, collectionLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *logRepository) Append(entry domain.Log) error {
	logs, err := r.LoadAll()
	if err != nil {
		return err
	}
	logs = append(logs, entry)
	return saveSnapshot(r.db, collectionLogs, logs)
}
