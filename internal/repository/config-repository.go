package repository

import (
	"github.com/SundayYogurt/inventory_service/internal/domain"
	"gorm.io/gorm"
)

type ConfigRepository interface {
	// Load returns the stored config. found is false on a fresh database;
	// the caller decides how to seed defaults.
	Load() (cfg domain.AppConfig, found bool, err error)
	Save(cfg domain.AppConfig) error
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Load() (domain.AppConfig, bool, error) {
	var cfg domain.AppConfig
	found, err := loadSnapshot(r.db, collectionConfig, &cfg)
	if err != nil {
		return domain.AppConfig{}, false, err
	}
	return cfg, found, nil
}

func (r *configRepository) Save(cfg domain.AppConfig) error {
	return saveSnapshot(r.db, collectionConfig, cfg)
}
