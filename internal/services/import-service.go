package services

import (
	"fmt"
	"io"
	"log"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/google/uuid"
)

type ImportService interface {
	// ImportWorkbook parses the uploaded xlsx and merges its rows into the
	// asset collection by inventory code. Either every row is applied or,
	// on any validation error, none is.
	ImportWorkbook(actor domain.User, r io.Reader) (dto.ImportResponse, error)
}

type importService struct {
	assetRepo   repository.AssetRepository
	config      ConfigService
	spreadsheet SpreadsheetService
	audit       AuditService
}

func NewImportService(assetRepo repository.AssetRepository, config ConfigService, spreadsheet SpreadsheetService, audit AuditService) ImportService {
	return &importService{assetRepo: assetRepo, config: config, spreadsheet: spreadsheet, audit: audit}
}

func (s *importService) ImportWorkbook(actor domain.User, r io.Reader) (dto.ImportResponse, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return dto.ImportResponse{}, err
	}

	records, err := s.spreadsheet.Parse(r, cfg)
	if err != nil {
		return dto.ImportResponse{}, err
	}

	assets, err := s.assetRepo.LoadAll()
	if err != nil {
		return dto.ImportResponse{}, err
	}

	byCode := map[string]int{}
	for i, a := range assets {
		byCode[a.Code] = i
	}

	created, updated := 0, 0
	for _, rec := range records {
		if idx, ok := byCode[rec.Code]; ok {
			applyRecord(&assets[idx], rec)
			updated++
			continue
		}
		asset := domain.Asset{
			ID:               uuid.NewString(),
			Code:             rec.Code,
			CustomAttributes: domain.CustomAttributes{},
		}
		applyRecord(&asset, rec)
		assets = append(assets, asset)
		byCode[asset.Code] = len(assets) - 1
		created++
	}

	if err := s.assetRepo.ReplaceAll(assets); err != nil {
		return dto.ImportResponse{}, err
	}

	description := fmt.Sprintf("Import Excel : %d créés, %d mis à jour.", created, updated)
	if err := s.audit.Record(actor, domain.ActionConfig, description, "", nil); err != nil {
		log.Printf("record import log error: %v", err)
	}
	return dto.ImportResponse{Created: created, Updated: updated}, nil
}

// applyRecord overwrites the asset's core fields with the parsed row (the
// parser fills every core field) and merges custom attributes, imported
// values winning on conflict. The id, code, photo and archive flag are
// left untouched.
func applyRecord(asset *domain.Asset, rec domain.AssetImportRecord) {
	asset.Name = rec.Name
	asset.Category = rec.Category
	asset.Location = rec.Location
	asset.AcquisitionYear = rec.AcquisitionYear
	asset.RegistrationDate = rec.RegistrationDate
	asset.State = rec.State
	asset.HolderPresence = rec.HolderPresence
	asset.Holder = rec.Holder
	asset.Door = rec.Door
	asset.Description = rec.Description
	asset.Observation = rec.Observation

	if asset.CustomAttributes == nil {
		asset.CustomAttributes = domain.CustomAttributes{}
	}
	for id, v := range rec.CustomAttributes {
		asset.CustomAttributes[id] = v
	}
}
