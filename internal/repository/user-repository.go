package repository

import (
	"github.com/SundayYogurt/inventory_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	LoadAll() ([]domain.User, error)
	ReplaceAll(users []domain.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) LoadAll() ([]domain.User, error) {
	users := []domain.User{}
	if _, err := loadSnapshot(r.db, collectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ReplaceAll(users []domain.User) error {
	return saveSnapshot(r.db, collectionUsers, users)
}
