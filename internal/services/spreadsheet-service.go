package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet   = "Inventaire EDC"
	templateSheet = "Modèle Import"

	colCode     = "Code Inventaire"
	colName     = "Nom"
	colCategory = "Catégorie"
	colLocation = "Localisation"
	colYear     = "Année Acquisition"
	colState    = "État"
	colPresence = "Présence Détenteur"
)

// SpreadsheetService converts between assets and xlsx workbooks. It is
// stateless: the caller supplies the config so one load serves the whole
// operation.
type SpreadsheetService interface {
	Export(assets []domain.Asset, cfg domain.AppConfig) (*excelize.File, error)
	Template(cfg domain.AppConfig) (*excelize.File, error)
	// Parse reads the first sheet of an uploaded workbook. Rows with an
	// empty inventory code are skipped; any invalid row rejects the whole
	// batch with an ImportValidationError.
	Parse(r io.Reader, cfg domain.AppConfig) ([]domain.AssetImportRecord, error)
}

type spreadsheetService struct{}

func NewSpreadsheetService() SpreadsheetService {
	return &spreadsheetService{}
}

// coreColumns lists the built-in fields exported after the fixed columns,
// under their configured labels.
var coreColumns = []struct {
	key      string
	fallback string
	value    func(a domain.Asset) string
}{
	{"registrationDate", "Date d'enregistrement", func(a domain.Asset) string { return a.RegistrationDate }},
	{"door", "Porte", func(a domain.Asset) string { return a.Door }},
	{"holder", "Détenteur", func(a domain.Asset) string { return a.Holder }},
	{"description", "Description", func(a domain.Asset) string { return a.Description }},
	{"observation", "Observation", func(a domain.Asset) string { return a.Observation }},
}

func (s *spreadsheetService) Export(assets []domain.Asset, cfg domain.AppConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{colCode, colName, colCategory, colLocation, colYear, colState, colPresence}
	for _, c := range coreColumns {
		headers = append(headers, cfg.CoreFieldLabel(c.key, c.fallback))
	}
	activeFields := activeCustomFields(cfg)
	for _, cf := range activeFields {
		headers = append(headers, cf.Label)
	}
	if err := writeHeaderRow(f, exportSheet, headers); err != nil {
		return nil, err
	}

	row := 2
	for _, a := range assets {
		if a.IsArchived {
			continue
		}
		values := []string{
			a.Code,
			a.Name,
			categoryLabel(a.Category, cfg),
			a.Location,
			a.AcquisitionYear,
			a.State,
			a.HolderPresence,
		}
		for _, c := range coreColumns {
			values = append(values, c.value(a))
		}
		for _, cf := range activeFields {
			values = append(values, a.CustomAttributes[cf.ID])
		}
		if err := writeRow(f, exportSheet, row, values); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

func (s *spreadsheetService) Template(cfg domain.AppConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(templateSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{colCode, colName, colCategory, colLocation, colYear, colState, colPresence}
	for _, c := range coreColumns {
		headers = append(headers, cfg.CoreFieldLabel(c.key, c.fallback))
	}
	for _, cf := range activeCustomFields(cfg) {
		headers = append(headers, cf.Label)
	}
	if err := writeHeaderRow(f, templateSheet, headers); err != nil {
		return nil, err
	}

	// One example row showing the expected category format.
	example := []string{
		"2024-EDC-CC-0001", "Ordinateur portable", "CC - " + cfg.CategoriesDescriptions["CC"],
		"EDC", "2024", firstOrEmpty(cfg.States), firstOrEmpty(cfg.HolderPresences),
	}
	if err := writeRow(f, templateSheet, 2, example); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *spreadsheetService) Parse(r io.Reader, cfg domain.AppConfig) ([]domain.AssetImportRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("fichier Excel illisible : %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("le classeur ne contient aucune feuille")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: []string{colCode, colName, colCategory, colLocation}}
	}

	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}

	missing := []string{}
	for _, required := range []string{colCode, colName, colCategory, colLocation} {
		if _, ok := header[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	coreIdx := map[string]int{}
	for _, c := range coreColumns {
		if i, ok := header[cfg.CoreFieldLabel(c.key, c.fallback)]; ok {
			coreIdx[c.key] = i
		}
	}
	customIdx := map[string]int{}
	for _, cf := range activeCustomFields(cfg) {
		if i, ok := header[cf.Label]; ok {
			customIdx[cf.ID] = i
		}
	}

	records := []domain.AssetImportRecord{}
	rowErrors := []string{}
	for n, row := range rows[1:] {
		line := n + 2
		cell := func(col string) string {
			i, ok := header[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		code := cell(colCode)
		if code == "" {
			continue
		}

		rawCategory := cell(colCategory)
		category := parseCategoryCode(rawCategory)
		if !cfg.HasCategory(category) {
			rowErrors = append(rowErrors, fmt.Sprintf(
				"Ligne %d: La catégorie '%s' (dans '%s') n'existe pas dans la configuration.",
				line, category, rawCategory))
			continue
		}

		rec := domain.AssetImportRecord{
			Code:             code,
			Name:             cell(colName),
			Category:         category,
			Location:         cell(colLocation),
			AcquisitionYear:  cell(colYear),
			State:            cell(colState),
			HolderPresence:   cell(colPresence),
			CustomAttributes: domain.CustomAttributes{},
		}
		if rec.Name == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Ligne %d: Le nom est obligatoire.", line))
			continue
		}
		if rec.Location == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Ligne %d: La localisation est obligatoire.", line))
			continue
		}

		if i, ok := coreIdx["registrationDate"]; ok && i < len(row) {
			rec.RegistrationDate = strings.TrimSpace(row[i])
		}
		if i, ok := coreIdx["door"]; ok && i < len(row) {
			rec.Door = strings.TrimSpace(row[i])
		}
		if i, ok := coreIdx["holder"]; ok && i < len(row) {
			rec.Holder = strings.TrimSpace(row[i])
		}
		if i, ok := coreIdx["description"]; ok && i < len(row) {
			rec.Description = strings.TrimSpace(row[i])
		}
		if i, ok := coreIdx["observation"]; ok && i < len(row) {
			rec.Observation = strings.TrimSpace(row[i])
		}
		for id, i := range customIdx {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				rec.CustomAttributes[id] = strings.TrimSpace(row[i])
			}
		}

		// A missing acquisition year stays empty; the other selects fall
		// back to the first configured value.
		if rec.RegistrationDate == "" {
			rec.RegistrationDate = time.Now().Format("2006-01-02")
		}
		if rec.State == "" {
			rec.State = firstOrEmpty(cfg.States)
		}
		if rec.HolderPresence == "" {
			rec.HolderPresence = firstOrEmpty(cfg.HolderPresences)
		}

		records = append(records, rec)
	}

	if len(rowErrors) > 0 {
		return nil, &ImportValidationError{Rows: rowErrors}
	}
	return records, nil
}

// parseCategoryCode extracts the category code from a cell that may hold
// "CC - Matériel informatique", "CC Matériel informatique" or just "CC".
func parseCategoryCode(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "-"); i >= 0 {
		return strings.ToUpper(strings.TrimSpace(raw[:i]))
	}
	if i := strings.Index(raw, " "); i >= 0 {
		return strings.ToUpper(strings.TrimSpace(raw[:i]))
	}
	return strings.ToUpper(raw)
}

func categoryLabel(code string, cfg domain.AppConfig) string {
	if desc, ok := cfg.CategoriesDescriptions[code]; ok && desc != "" {
		return code + " - " + desc
	}
	return code
}

func activeCustomFields(cfg domain.AppConfig) []domain.CustomField {
	out := []domain.CustomField{}
	for _, f := range cfg.CustomFields {
		if !f.IsArchived {
			out = append(out, f)
		}
	}
	return out
}

func firstOrEmpty(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(len(h)+10)); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
