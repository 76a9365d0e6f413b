package domain

type CustomFieldType string

const (
	FieldText    CustomFieldType = "text"
	FieldNumber  CustomFieldType = "number"
	FieldDate    CustomFieldType = "date"
	FieldSelect  CustomFieldType = "select"
	FieldBoolean CustomFieldType = "boolean"
)

// CustomField is an admin-defined asset attribute. Archiving hides the
// field from entry forms without deleting values already stored under its
// id in CustomAttributes.
type CustomField struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Type       CustomFieldType `json:"type"`
	Options    []string        `json:"options,omitempty"` // select only
	IsArchived bool            `json:"isArchived"`
}

// CoreFieldConfig allows renaming or hiding a built-in asset field without
// a schema migration. The field itself always exists on the asset.
type CoreFieldConfig struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	IsVisible bool   `json:"isVisible"`
}

type AppConfig struct {
	CompanyName            string              `json:"companyName"`
	CompanyLogo            string              `json:"companyLogo"`
	Locations              []string            `json:"locations"`
	States                 []string            `json:"states"`
	HolderPresences        []string            `json:"holderPresences"`
	Categories             map[string][]string `json:"categories"`
	CategoriesDescriptions map[string]string   `json:"categoriesDescriptions"`
	CustomFields           []CustomField       `json:"customFields"`
	CoreFields             []CoreFieldConfig   `json:"coreFields"`
}

func (c AppConfig) HasCategory(code string) bool {
	_, ok := c.Categories[code]
	return ok
}

func (c AppConfig) CustomFieldByID(id string) (CustomField, bool) {
	for _, f := range c.CustomFields {
		if f.ID == id {
			return f, true
		}
	}
	return CustomField{}, false
}

// CoreFieldLabel returns the configured label for a built-in field,
// falling back to the given default when the field is not configured.
func (c AppConfig) CoreFieldLabel(key, fallback string) string {
	for _, f := range c.CoreFields {
		if f.Key == key {
			return f.Label
		}
	}
	return fallback
}
