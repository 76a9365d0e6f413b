package dto

import "github.com/SundayYogurt/inventory_service/internal/domain"

type CompanyNameRequest struct {
	Name string `json:"name"`
}

type ValueRequest struct {
	Value string `json:"value"`
}

type CategoryRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type CategoryItemRequest struct {
	Item string `json:"item"`
}

type CustomFieldRequest struct {
	Label   string                 `json:"label"`
	Type    domain.CustomFieldType `json:"type"`
	Options []string               `json:"options"`
}

type CoreFieldRequest struct {
	Label     string `json:"label"`
	IsVisible bool   `json:"isVisible"`
}
