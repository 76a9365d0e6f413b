package domain

// CustomAttributes maps a custom field id to the stored value. Values are
// kept as strings and validated against the field's declared type when
// written (see services.ConfigService.ValidateCustomAttributes).
type CustomAttributes map[string]string

// StateWithdrawn is the terminal state forced on an asset when it is
// archived. Archived assets are never physically removed.
const StateWithdrawn = "Retiré"

type Asset struct {
	ID               string           `json:"id"`
	Code             string           `json:"code"` // AAAA-LOC-CAT-SEQ, immutable once assigned
	RegistrationDate string           `json:"registrationDate"`
	AcquisitionYear  string           `json:"acquisitionYear"`
	Location         string           `json:"location"`
	Category         string           `json:"category"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Door             string           `json:"door"`
	State            string           `json:"state"`
	Holder           string           `json:"holder"`
	HolderPresence   string           `json:"holderPresence"`
	Observation      string           `json:"observation"`
	PhotoURL         string           `json:"photoUrl,omitempty"`
	IsArchived       bool             `json:"isArchived"`
	CustomAttributes CustomAttributes `json:"customAttributes"`
}

// AssetImportRecord is one parsed spreadsheet row. The parser fills every
// core field (applying defaults for optional columns), so a merge over an
// existing asset overwrites all mapped fields.
type AssetImportRecord struct {
	Code             string
	Name             string
	Category         string
	Location         string
	AcquisitionYear  string
	RegistrationDate string
	State            string
	HolderPresence   string
	Holder           string
	Door             string
	Description      string
	Observation      string
	CustomAttributes CustomAttributes
}
