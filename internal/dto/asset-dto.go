package dto

import "github.com/SundayYogurt/inventory_service/internal/domain"

// AssetInput carries the editable fields of an asset. The code is never
// accepted from the client; it is generated at creation and immutable.
type AssetInput struct {
	RegistrationDate string                  `json:"registrationDate"`
	AcquisitionYear  string                  `json:"acquisitionYear"`
	Location         string                  `json:"location"`
	Category         string                  `json:"category"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	Door             string                  `json:"door"`
	State            string                  `json:"state"`
	Holder           string                  `json:"holder"`
	HolderPresence   string                  `json:"holderPresence"`
	Observation      string                  `json:"observation"`
	CustomAttributes domain.CustomAttributes `json:"customAttributes"`

	// Reason justifies a change to a critical field. Required by the
	// update operation when such a field changes, ignored otherwise.
	Reason string `json:"reason"`
}

// AssetListResponse is one page of the filtered active-asset list.
type AssetListResponse struct {
	Items    []domain.Asset `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type CodePreviewResponse struct {
	Code     string `json:"code"`
	Complete bool   `json:"complete"`
}
