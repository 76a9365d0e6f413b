package repository

import (
	"github.com/SundayYogurt/inventory_service/internal/domain"
	"gorm.io/gorm"
)

type AssetRepository interface {
	LoadAll() ([]domain.Asset, error)
	ReplaceAll(assets []domain.Asset) error
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) LoadAll() ([]domain.Asset, error) {
	assets := []domain.Asset{}
	if _, err := loadSnapshot(r.db, collectionAssets, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) ReplaceAll(assets []domain.Asset) error {
	return saveSnapshot(r.db, collectionAssets, assets)
}
