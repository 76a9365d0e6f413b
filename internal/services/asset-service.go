package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/google/uuid"
)

// criticalFields are the asset fields whose modification requires a
// justification recorded in the audit log.
var criticalFields = map[string]bool{
	"location":        true,
	"acquisitionYear": true,
	"name":            true,
	"category":        true,
	"door":            true,
	"state":           true,
	"holderPresence":  true,
}

const listPageSize = 50

// badStates are the dashboard's "bad condition" bucket.
var badStates = map[string]bool{
	"Défectueux": true,
	"Déprécié":   true,
	"Retiré":     true,
}

type AssetService interface {
	List(includeArchived bool) ([]domain.Asset, error)
	// Search pages through active assets matching query on code, name or
	// holder (case-insensitive substring).
	Search(query string, page int) (dto.AssetListResponse, error)
	Get(id string) (*domain.Asset, error)
	PreviewCode(year, location, category string) (dto.CodePreviewResponse, error)
	Create(actor domain.User, input dto.AssetInput) (*domain.Asset, error)
	// Update applies input to the asset. When a critical field changes the
	// input must carry a non-empty Reason. A missing id is a no-op.
	Update(actor domain.User, id string, input dto.AssetInput) (*domain.Asset, error)
	// Archive soft-deletes the asset and forces its state to Retiré.
	Archive(actor domain.User, id string) error
	SetPhoto(actor domain.User, id, url string) (*domain.Asset, error)
	Stats() (dto.DashboardStats, error)
}

type assetService struct {
	assetRepo repository.AssetRepository
	config    ConfigService
	audit     AuditService
}

func NewAssetService(assetRepo repository.AssetRepository, config ConfigService, audit AuditService) AssetService {
	return &assetService{assetRepo: assetRepo, config: config, audit: audit}
}

func (s *assetService) List(includeArchived bool) ([]domain.Asset, error) {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return nil, err
	}
	if includeArchived {
		return assets, nil
	}
	out := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if !a.IsArchived {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *assetService) Search(query string, page int) (dto.AssetListResponse, error) {
	active, err := s.List(false)
	if err != nil {
		return dto.AssetListResponse{}, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	filtered := active
	if q != "" {
		filtered = make([]domain.Asset, 0, len(active))
		for _, a := range active {
			if strings.Contains(strings.ToLower(a.Code), q) ||
				strings.Contains(strings.ToLower(a.Name), q) ||
				strings.Contains(strings.ToLower(a.Holder), q) {
				filtered = append(filtered, a)
			}
		}
	}

	if page < 1 {
		page = 1
	}
	start := (page - 1) * listPageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + listPageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return dto.AssetListResponse{
		Items:    filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: listPageSize,
	}, nil
}

func (s *assetService) Get(id string) (*domain.Asset, error) {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range assets {
		if assets[i].ID == id {
			return &assets[i], nil
		}
	}
	return nil, errors.New("actif introuvable")
}

func (s *assetService) PreviewCode(year, location, category string) (dto.CodePreviewResponse, error) {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return dto.CodePreviewResponse{}, err
	}
	code, complete := BuildCodePreview(year, location, category, assets)
	return dto.CodePreviewResponse{Code: code, Complete: complete}, nil
}

func (s *assetService) Create(actor domain.User, input dto.AssetInput) (*domain.Asset, error) {
	if input.Location == "" || input.Category == "" || strings.TrimSpace(input.Name) == "" {
		return nil, ErrMissingRequired
	}

	cfg, err := s.config.Get()
	if err != nil {
		return nil, err
	}
	if !cfg.HasCategory(input.Category) {
		return nil, fmt.Errorf("la catégorie '%s' n'existe pas dans la configuration", input.Category)
	}
	if err := s.config.ValidateCustomAttributes(input.CustomAttributes); err != nil {
		return nil, err
	}

	if input.AcquisitionYear == "" {
		input.AcquisitionYear = fmt.Sprintf("%d", time.Now().Year())
	}
	if input.RegistrationDate == "" {
		input.RegistrationDate = time.Now().Format("2006-01-02")
	}

	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return nil, err
	}

	code, complete := BuildCodePreview(input.AcquisitionYear, input.Location, input.Category, assets)
	if !complete {
		return nil, ErrCodeIncomplete
	}

	asset := domain.Asset{
		ID:               uuid.NewString(),
		Code:             code,
		RegistrationDate: input.RegistrationDate,
		AcquisitionYear:  input.AcquisitionYear,
		Location:         input.Location,
		Category:         input.Category,
		Name:             strings.TrimSpace(input.Name),
		Description:      input.Description,
		Door:             input.Door,
		State:            input.State,
		Holder:           input.Holder,
		HolderPresence:   input.HolderPresence,
		Observation:      input.Observation,
		CustomAttributes: input.CustomAttributes,
	}
	if asset.State == "" && len(cfg.States) > 0 {
		asset.State = cfg.States[0]
	}
	if asset.CustomAttributes == nil {
		asset.CustomAttributes = domain.CustomAttributes{}
	}

	assets = append(assets, asset)
	if err := s.assetRepo.ReplaceAll(assets); err != nil {
		return nil, err
	}

	if err := s.audit.Record(actor, domain.ActionCreate, "Création actif", asset.Code, nil); err != nil {
		log.Printf("record create log error: %v", err)
	}
	return &asset, nil
}

func (s *assetService) Update(actor domain.User, id string, input dto.AssetInput) (*domain.Asset, error) {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range assets {
		if assets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Unknown id: tolerate silently, nothing to persist or log.
		return nil, nil
	}

	current := assets[idx]
	updated := current
	updated.RegistrationDate = input.RegistrationDate
	updated.AcquisitionYear = input.AcquisitionYear
	updated.Location = input.Location
	updated.Category = input.Category
	updated.Name = strings.TrimSpace(input.Name)
	updated.Description = input.Description
	updated.Door = input.Door
	updated.State = input.State
	updated.Holder = input.Holder
	updated.HolderPresence = input.HolderPresence
	updated.Observation = input.Observation
	if input.CustomAttributes != nil {
		updated.CustomAttributes = input.CustomAttributes
	}

	changes := diffAssets(current, updated)
	if len(changes) == 0 {
		return &current, nil
	}

	critical := false
	for _, c := range changes {
		if criticalFields[c.Field] {
			critical = true
			break
		}
	}
	if critical && strings.TrimSpace(input.Reason) == "" {
		return nil, ErrReasonRequired
	}

	if updated.Category != current.Category {
		cfg, err := s.config.Get()
		if err != nil {
			return nil, err
		}
		if !cfg.HasCategory(updated.Category) {
			return nil, fmt.Errorf("la catégorie '%s' n'existe pas dans la configuration", updated.Category)
		}
	}
	if err := s.config.ValidateCustomAttributes(input.CustomAttributes); err != nil {
		return nil, err
	}

	assets[idx] = updated
	if err := s.assetRepo.ReplaceAll(assets); err != nil {
		return nil, err
	}

	description := "Modification actif"
	if critical {
		description = fmt.Sprintf("Modification (Motif: %s)", strings.TrimSpace(input.Reason))
	}
	if err := s.audit.Record(actor, domain.ActionUpdate, description, updated.Code, changes); err != nil {
		log.Printf("record update log error: %v", err)
	}
	return &updated, nil
}

func (s *assetService) Archive(actor domain.User, id string) error {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return err
	}

	for i := range assets {
		if assets[i].ID != id {
			continue
		}
		if assets[i].IsArchived {
			return nil
		}
		assets[i].IsArchived = true
		assets[i].State = domain.StateWithdrawn
		if err := s.assetRepo.ReplaceAll(assets); err != nil {
			return err
		}
		if err := s.audit.Record(actor, domain.ActionDelete, "Archivage actif", assets[i].Code, nil); err != nil {
			log.Printf("record archive log error: %v", err)
		}
		return nil
	}
	// Unknown id: tolerate silently.
	return nil
}

func (s *assetService) SetPhoto(actor domain.User, id, url string) (*domain.Asset, error) {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range assets {
		if assets[i].ID != id {
			continue
		}
		before := assets[i].PhotoURL
		assets[i].PhotoURL = url
		if err := s.assetRepo.ReplaceAll(assets); err != nil {
			return nil, err
		}
		changes := []domain.FieldChange{{Field: "photoUrl", Before: before, After: url}}
		if err := s.audit.Record(actor, domain.ActionUpdate, "Modification photo", assets[i].Code, changes); err != nil {
			log.Printf("record photo log error: %v", err)
		}
		return &assets[i], nil
	}
	return nil, errors.New("actif introuvable")
}

func (s *assetService) Stats() (dto.DashboardStats, error) {
	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return dto.DashboardStats{}, err
	}

	stats := dto.DashboardStats{}
	byState := map[string]int{}
	byCategory := map[string]int{}
	byLocation := map[string]int{}
	for _, a := range assets {
		if a.IsArchived {
			stats.Archived++
			continue
		}
		stats.Total++
		if a.State == "Bon état" {
			stats.GoodCondition++
		}
		if badStates[a.State] {
			stats.BadCondition++
		}
		byState[a.State]++
		byCategory[a.Category]++
		byLocation[a.Location]++
	}
	stats.DistinctLocations = len(byLocation)
	stats.ByState = toNameCounts(byState)
	stats.ByCategory = toNameCounts(byCategory)
	stats.ByLocation = toNameCounts(byLocation)
	return stats, nil
}

func toNameCounts(m map[string]int) []dto.NameCount {
	out := make([]dto.NameCount, 0, len(m))
	for name, count := range m {
		out = append(out, dto.NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// diffAssets lists field-level differences between two versions of an
// asset. The code is immutable so it is never part of the diff.
func diffAssets(before, after domain.Asset) []domain.FieldChange {
	changes := []domain.FieldChange{}
	pairs := []struct {
		field string
		b, a  string
	}{
		{"registrationDate", before.RegistrationDate, after.RegistrationDate},
		{"acquisitionYear", before.AcquisitionYear, after.AcquisitionYear},
		{"location", before.Location, after.Location},
		{"category", before.Category, after.Category},
		{"name", before.Name, after.Name},
		{"description", before.Description, after.Description},
		{"door", before.Door, after.Door},
		{"state", before.State, after.State},
		{"holder", before.Holder, after.Holder},
		{"holderPresence", before.HolderPresence, after.HolderPresence},
		{"observation", before.Observation, after.Observation},
	}
	for _, p := range pairs {
		if p.b != p.a {
			changes = append(changes, domain.FieldChange{Field: p.field, Before: p.b, After: p.a})
		}
	}

	seen := map[string]bool{}
	for id, av := range after.CustomAttributes {
		seen[id] = true
		if bv, ok := before.CustomAttributes[id]; !ok || bv != av {
			bvv := ""
			if ok {
				bvv = bv
			}
			changes = append(changes, domain.FieldChange{Field: "custom:" + id, Before: bvv, After: av})
		}
	}
	for id, bv := range before.CustomAttributes {
		if !seen[id] {
			changes = append(changes, domain.FieldChange{Field: "custom:" + id, Before: bv, After: ""})
		}
	}
	return changes
}
