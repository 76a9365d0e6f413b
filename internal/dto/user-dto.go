package dto

import "github.com/SundayYogurt/inventory_service/internal/domain"

type UserInput struct {
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	Permissions domain.Permission `json:"permissions"`
}
