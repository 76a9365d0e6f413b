package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/google/uuid"
)

type ConfigService interface {
	Get() (domain.AppConfig, error)

	UpdateCompanyName(actor domain.User, name string) (domain.AppConfig, error)
	UpdateCompanyLogo(actor domain.User, url string) (domain.AppConfig, error)

	AddLocation(actor domain.User, code string) (domain.AppConfig, error)
	RenameLocation(actor domain.User, oldCode, newCode string) (domain.AppConfig, error)
	RemoveLocation(actor domain.User, code string) (domain.AppConfig, error)
	AddState(actor domain.User, state string) (domain.AppConfig, error)
	RenameState(actor domain.User, oldState, newState string) (domain.AppConfig, error)
	RemoveState(actor domain.User, state string) (domain.AppConfig, error)
	AddHolderPresence(actor domain.User, value string) (domain.AppConfig, error)
	RenameHolderPresence(actor domain.User, oldValue, newValue string) (domain.AppConfig, error)
	RemoveHolderPresence(actor domain.User, value string) (domain.AppConfig, error)

	AddCategory(actor domain.User, code, description string) (domain.AppConfig, error)
	UpdateCategoryDescription(actor domain.User, code, description string) (domain.AppConfig, error)
	RemoveCategory(actor domain.User, code string) (domain.AppConfig, error)
	AddCategoryItem(actor domain.User, code, item string) (domain.AppConfig, error)
	RenameCategoryItem(actor domain.User, code, oldItem, newItem string) (domain.AppConfig, error)
	RemoveCategoryItem(actor domain.User, code, item string) (domain.AppConfig, error)

	AddCustomField(actor domain.User, label string, fieldType domain.CustomFieldType, options []string) (domain.AppConfig, error)
	// UpdateCustomField changes label/type/options in place, keeping the id
	// so stored attribute values stay attached.
	UpdateCustomField(actor domain.User, id, label string, fieldType domain.CustomFieldType, options []string) (domain.AppConfig, error)
	// ToggleCustomFieldArchive flips the archive flag: archiving hides the
	// field from forms, un-archiving brings it back, values survive both.
	ToggleCustomFieldArchive(actor domain.User, id string) (domain.AppConfig, error)
	// DeleteCustomField removes the field definition permanently; values
	// stored under its id become invisible.
	DeleteCustomField(actor domain.User, id string) (domain.AppConfig, error)
	UpdateCoreField(actor domain.User, key, label string, visible bool) (domain.AppConfig, error)

	// ValidateCustomAttributes checks each value against the declared type
	// of its field. Unknown field ids are rejected.
	ValidateCustomAttributes(attrs domain.CustomAttributes) error
}

type configService struct {
	configRepo repository.ConfigRepository
	audit      AuditService
}

func NewConfigService(configRepo repository.ConfigRepository, audit AuditService) ConfigService {
	return &configService{configRepo: configRepo, audit: audit}
}

func (s *configService) Get() (domain.AppConfig, error) {
	cfg, found, err := s.configRepo.Load()
	if err != nil {
		return domain.AppConfig{}, err
	}
	if !found {
		return domain.DefaultConfig(), nil
	}
	// Configs saved before core fields were configurable lack the list.
	if len(cfg.CoreFields) == 0 {
		cfg.CoreFields = domain.DefaultCoreFields()
	}
	return cfg, nil
}

// mutate loads the config, applies fn, persists the result, then records
// one CONFIG log entry. fn returns the log description.
func (s *configService) mutate(actor domain.User, fn func(cfg *domain.AppConfig) (string, error)) (domain.AppConfig, error) {
	cfg, err := s.Get()
	if err != nil {
		return domain.AppConfig{}, err
	}

	description, err := fn(&cfg)
	if err != nil {
		return domain.AppConfig{}, err
	}

	if err := s.configRepo.Save(cfg); err != nil {
		return domain.AppConfig{}, err
	}

	if err := s.audit.Record(actor, domain.ActionConfig, description, "", nil); err != nil {
		log.Printf("record config log error: %v", err)
	}
	return cfg, nil
}

func (s *configService) UpdateCompanyName(actor domain.User, name string) (domain.AppConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.AppConfig{}, errors.New("le nom de l'entreprise ne peut pas être vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		cfg.CompanyName = name
		return fmt.Sprintf("Modification du nom de l'entreprise : %s", name), nil
	})
}

func (s *configService) UpdateCompanyLogo(actor domain.User, url string) (domain.AppConfig, error) {
	if url == "" {
		return domain.AppConfig{}, errors.New("logo manquant")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		cfg.CompanyLogo = url
		return "Modification du logo de l'entreprise", nil
	})
}

func (s *configService) AddLocation(actor domain.User, code string) (domain.AppConfig, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.AppConfig{}, errors.New("code de localisation vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for _, l := range cfg.Locations {
			if l == code {
				return "", fmt.Errorf("la localisation '%s' existe déjà", code)
			}
		}
		cfg.Locations = append(cfg.Locations, code)
		return fmt.Sprintf("Ajout de la localisation : %s", code), nil
	})
}

func (s *configService) RenameLocation(actor domain.User, oldCode, newCode string) (domain.AppConfig, error) {
	newCode = strings.ToUpper(strings.TrimSpace(newCode))
	if newCode == "" {
		return domain.AppConfig{}, errors.New("code de localisation vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		renamed, ok := replaceString(cfg.Locations, oldCode, newCode)
		if !ok {
			return "", fmt.Errorf("la localisation '%s' n'existe pas", oldCode)
		}
		cfg.Locations = renamed
		return fmt.Sprintf("Renommage de la localisation '%s' en '%s'", oldCode, newCode), nil
	})
}

func (s *configService) RemoveLocation(actor domain.User, code string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		cfg.Locations = removeString(cfg.Locations, code)
		return fmt.Sprintf("Suppression de la localisation : %s", code), nil
	})
}

func (s *configService) AddState(actor domain.User, state string) (domain.AppConfig, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return domain.AppConfig{}, errors.New("état vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for _, st := range cfg.States {
			if st == state {
				return "", fmt.Errorf("l'état '%s' existe déjà", state)
			}
		}
		cfg.States = append(cfg.States, state)
		return fmt.Sprintf("Ajout de l'état : %s", state), nil
	})
}

func (s *configService) RenameState(actor domain.User, oldState, newState string) (domain.AppConfig, error) {
	newState = strings.TrimSpace(newState)
	if newState == "" {
		return domain.AppConfig{}, errors.New("état vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		renamed, ok := replaceString(cfg.States, oldState, newState)
		if !ok {
			return "", fmt.Errorf("l'état '%s' n'existe pas", oldState)
		}
		cfg.States = renamed
		return fmt.Sprintf("Renommage de l'état '%s' en '%s'", oldState, newState), nil
	})
}

func (s *configService) RemoveState(actor domain.User, state string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		cfg.States = removeString(cfg.States, state)
		return fmt.Sprintf("Suppression de l'état : %s", state), nil
	})
}

func (s *configService) AddHolderPresence(actor domain.User, value string) (domain.AppConfig, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.AppConfig{}, errors.New("valeur de présence vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for _, p := range cfg.HolderPresences {
			if p == value {
				return "", fmt.Errorf("la présence '%s' existe déjà", value)
			}
		}
		cfg.HolderPresences = append(cfg.HolderPresences, value)
		return fmt.Sprintf("Ajout de la présence détenteur : %s", value), nil
	})
}

func (s *configService) RenameHolderPresence(actor domain.User, oldValue, newValue string) (domain.AppConfig, error) {
	newValue = strings.TrimSpace(newValue)
	if newValue == "" {
		return domain.AppConfig{}, errors.New("valeur de présence vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		renamed, ok := replaceString(cfg.HolderPresences, oldValue, newValue)
		if !ok {
			return "", fmt.Errorf("la présence '%s' n'existe pas", oldValue)
		}
		cfg.HolderPresences = renamed
		return fmt.Sprintf("Renommage de la présence détenteur '%s' en '%s'", oldValue, newValue), nil
	})
}

func (s *configService) RemoveHolderPresence(actor domain.User, value string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		cfg.HolderPresences = removeString(cfg.HolderPresences, value)
		return fmt.Sprintf("Suppression de la présence détenteur : %s", value), nil
	})
}

func (s *configService) AddCategory(actor domain.User, code, description string) (domain.AppConfig, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.AppConfig{}, errors.New("code de catégorie vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		if cfg.HasCategory(code) {
			return "", fmt.Errorf("la catégorie '%s' existe déjà", code)
		}
		if cfg.Categories == nil {
			cfg.Categories = map[string][]string{}
		}
		if cfg.CategoriesDescriptions == nil {
			cfg.CategoriesDescriptions = map[string]string{}
		}
		cfg.Categories[code] = []string{}
		cfg.CategoriesDescriptions[code] = strings.TrimSpace(description)
		return fmt.Sprintf("Ajout de la catégorie : %s", code), nil
	})
}

func (s *configService) UpdateCategoryDescription(actor domain.User, code, description string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		if !cfg.HasCategory(code) {
			return "", fmt.Errorf("la catégorie '%s' n'existe pas", code)
		}
		if cfg.CategoriesDescriptions == nil {
			cfg.CategoriesDescriptions = map[string]string{}
		}
		cfg.CategoriesDescriptions[code] = strings.TrimSpace(description)
		return fmt.Sprintf("Modification de la description de la catégorie %s", code), nil
	})
}

func (s *configService) RemoveCategory(actor domain.User, code string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		delete(cfg.Categories, code)
		delete(cfg.CategoriesDescriptions, code)
		return fmt.Sprintf("Suppression de la catégorie : %s", code), nil
	})
}

func (s *configService) AddCategoryItem(actor domain.User, code, item string) (domain.AppConfig, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return domain.AppConfig{}, errors.New("libellé d'article vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		if !cfg.HasCategory(code) {
			return "", fmt.Errorf("la catégorie '%s' n'existe pas", code)
		}
		for _, it := range cfg.Categories[code] {
			if it == item {
				return "", fmt.Errorf("l'article '%s' existe déjà dans %s", item, code)
			}
		}
		cfg.Categories[code] = append(cfg.Categories[code], item)
		return fmt.Sprintf("Ajout de l'article '%s' dans la catégorie %s", item, code), nil
	})
}

func (s *configService) RenameCategoryItem(actor domain.User, code, oldItem, newItem string) (domain.AppConfig, error) {
	newItem = strings.TrimSpace(newItem)
	if newItem == "" {
		return domain.AppConfig{}, errors.New("libellé d'article vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		if !cfg.HasCategory(code) {
			return "", fmt.Errorf("la catégorie '%s' n'existe pas", code)
		}
		renamed, ok := replaceString(cfg.Categories[code], oldItem, newItem)
		if !ok {
			return "", fmt.Errorf("l'article '%s' n'existe pas dans %s", oldItem, code)
		}
		cfg.Categories[code] = renamed
		return fmt.Sprintf("Renommage de l'article '%s' en '%s' dans la catégorie %s", oldItem, newItem, code), nil
	})
}

func (s *configService) RemoveCategoryItem(actor domain.User, code, item string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		if !cfg.HasCategory(code) {
			return "", fmt.Errorf("la catégorie '%s' n'existe pas", code)
		}
		cfg.Categories[code] = removeString(cfg.Categories[code], item)
		return fmt.Sprintf("Suppression de l'article '%s' de la catégorie %s", item, code), nil
	})
}

func (s *configService) AddCustomField(actor domain.User, label string, fieldType domain.CustomFieldType, options []string) (domain.AppConfig, error) {
	label, fieldType, options, err := checkCustomFieldInput(label, fieldType, options)
	if err != nil {
		return domain.AppConfig{}, err
	}

	field := domain.CustomField{
		ID:      "field_" + uuid.NewString(),
		Label:   label,
		Type:    fieldType,
		Options: options,
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		cfg.CustomFields = append(cfg.CustomFields, field)
		return fmt.Sprintf("Ajout du champ personnalisé : %s", label), nil
	})
}

func (s *configService) UpdateCustomField(actor domain.User, id, label string, fieldType domain.CustomFieldType, options []string) (domain.AppConfig, error) {
	label, fieldType, options, err := checkCustomFieldInput(label, fieldType, options)
	if err != nil {
		return domain.AppConfig{}, err
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for i, f := range cfg.CustomFields {
			if f.ID == id {
				cfg.CustomFields[i].Label = label
				cfg.CustomFields[i].Type = fieldType
				cfg.CustomFields[i].Options = options
				return fmt.Sprintf("Modification du champ personnalisé : %s", label), nil
			}
		}
		return "", fmt.Errorf("champ personnalisé introuvable : %s", id)
	})
}

func (s *configService) ToggleCustomFieldArchive(actor domain.User, id string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for i, f := range cfg.CustomFields {
			if f.ID == id {
				cfg.CustomFields[i].IsArchived = !f.IsArchived
				if cfg.CustomFields[i].IsArchived {
					return fmt.Sprintf("Archivage du champ personnalisé : %s", f.Label), nil
				}
				return fmt.Sprintf("Réactivation du champ personnalisé : %s", f.Label), nil
			}
		}
		return "", fmt.Errorf("champ personnalisé introuvable : %s", id)
	})
}

func (s *configService) DeleteCustomField(actor domain.User, id string) (domain.AppConfig, error) {
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for i, f := range cfg.CustomFields {
			if f.ID == id {
				cfg.CustomFields = append(cfg.CustomFields[:i], cfg.CustomFields[i+1:]...)
				return fmt.Sprintf("Suppression définitive du champ personnalisé : %s", f.Label), nil
			}
		}
		return "", fmt.Errorf("champ personnalisé introuvable : %s", id)
	})
}

// checkCustomFieldInput normalizes a custom-field definition. Options only
// apply to select fields; other types get them cleared.
func checkCustomFieldInput(label string, fieldType domain.CustomFieldType, options []string) (string, domain.CustomFieldType, []string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", "", nil, errors.New("libellé de champ vide")
	}
	switch fieldType {
	case domain.FieldText, domain.FieldNumber, domain.FieldDate, domain.FieldSelect, domain.FieldBoolean:
	default:
		return "", "", nil, fmt.Errorf("type de champ inconnu : %s", fieldType)
	}
	if fieldType == domain.FieldSelect {
		if len(options) == 0 {
			return "", "", nil, errors.New("un champ de type liste nécessite au moins une option")
		}
	} else {
		options = nil
	}
	return label, fieldType, options, nil
}

func (s *configService) UpdateCoreField(actor domain.User, key, label string, visible bool) (domain.AppConfig, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.AppConfig{}, errors.New("libellé de champ vide")
	}
	return s.mutate(actor, func(cfg *domain.AppConfig) (string, error) {
		for i, f := range cfg.CoreFields {
			if f.Key == key {
				cfg.CoreFields[i].Label = label
				cfg.CoreFields[i].IsVisible = visible
				return fmt.Sprintf("Modification du champ : %s", label), nil
			}
		}
		return "", fmt.Errorf("champ inconnu : %s", key)
	})
}

func (s *configService) ValidateCustomAttributes(attrs domain.CustomAttributes) error {
	if len(attrs) == 0 {
		return nil
	}
	cfg, err := s.Get()
	if err != nil {
		return err
	}
	for id, value := range attrs {
		field, ok := cfg.CustomFieldByID(id)
		if !ok {
			return fmt.Errorf("champ personnalisé inconnu : %s", id)
		}
		if value == "" {
			continue
		}
		switch field.Type {
		case domain.FieldNumber:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("la valeur de '%s' doit être un nombre", field.Label)
			}
		case domain.FieldDate:
			if _, err := time.Parse("2006-01-02", value); err != nil {
				return fmt.Errorf("la valeur de '%s' doit être une date (AAAA-MM-JJ)", field.Label)
			}
		case domain.FieldBoolean:
			if _, err := strconv.ParseBool(value); err != nil {
				return fmt.Errorf("la valeur de '%s' doit être oui/non", field.Label)
			}
		case domain.FieldSelect:
			valid := false
			for _, opt := range field.Options {
				if opt == value {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("la valeur '%s' n'est pas une option de '%s'", value, field.Label)
			}
		}
	}
	return nil
}

func replaceString(list []string, oldValue, newValue string) ([]string, bool) {
	out := make([]string, len(list))
	found := false
	for i, v := range list {
		if v == oldValue {
			out[i] = newValue
			found = true
			continue
		}
		out[i] = v
	}
	return out, found
}

func removeString(list []string, value string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
