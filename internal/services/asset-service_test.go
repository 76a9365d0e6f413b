package services

import (
	"testing"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssetInput() dto.AssetInput {
	return dto.AssetInput{
		AcquisitionYear: "2024",
		Location:        "EDC",
		Category:        "CC",
		Name:            "Ordinateur portable",
		State:           "Bon état",
	}
}

func TestCreateAssetGeneratesCode(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a1, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)
	assert.Equal(t, "2024-EDC-CC-0001", a1.Code)
	assert.NotEmpty(t, a1.ID)
	assert.False(t, a1.IsArchived)

	a2, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)
	assert.Equal(t, "2024-EDC-CC-0002", a2.Code)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionCreate, entry.Action)
	assert.Equal(t, "Création actif", entry.Description)
	assert.Equal(t, a2.Code, entry.TargetCode)
	assert.Equal(t, admin.Email, entry.UserEmail)
}

func TestCreateAssetRejectsMissingRequired(t *testing.T) {
	env := newTestEnv(t)

	input := newAssetInput()
	input.Name = "  "
	_, err := env.assets.Create(testAdmin(), input)
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestCreateAssetRejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	input := newAssetInput()
	input.Category = "ZZ"
	_, err := env.assets.Create(testAdmin(), input)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ZZ")
}

func TestCreateAssetDefaultsYearAndDate(t *testing.T) {
	env := newTestEnv(t)

	input := newAssetInput()
	input.AcquisitionYear = ""
	input.RegistrationDate = ""
	a, err := env.assets.Create(testAdmin(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, a.AcquisitionYear)
	assert.NotEmpty(t, a.RegistrationDate)
}

func TestUpdateCriticalFieldRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)

	input := newAssetInput()
	input.Location = "ALP"
	_, err = env.assets.Update(admin, a.ID, input)
	assert.ErrorIs(t, err, ErrReasonRequired)

	input.Reason = "Transfert de site"
	updated, err := env.assets.Update(admin, a.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "ALP", updated.Location)
	// The code never follows a location change.
	assert.Equal(t, a.Code, updated.Code)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionUpdate, entry.Action)
	assert.Equal(t, "Modification (Motif: Transfert de site)", entry.Description)
	require.Len(t, entry.Changes, 1)
	assert.Equal(t, "location", entry.Changes[0].Field)
	assert.Equal(t, "EDC", entry.Changes[0].Before)
	assert.Equal(t, "ALP", entry.Changes[0].After)
}

func TestUpdateNonCriticalFieldNeedsNoReason(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)

	input := newAssetInput()
	input.Observation = "RAS"
	updated, err := env.assets.Update(admin, a.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "RAS", updated.Observation)

	entry := env.lastLog(t)
	assert.Equal(t, "Modification actif", entry.Description)
}

func TestUpdateNoChangeWritesNoLog(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)
	before, err := env.logRepo.LoadAll()
	require.NoError(t, err)

	input := newAssetInput()
	input.RegistrationDate = a.RegistrationDate
	_, err = env.assets.Update(admin, a.ID, input)
	require.NoError(t, err)

	after, err := env.logRepo.LoadAll()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestUpdateUnknownIDIsSilentNoOp(t *testing.T) {
	env := newTestEnv(t)

	asset, err := env.assets.Update(testAdmin(), "missing-id", newAssetInput())
	require.NoError(t, err)
	assert.Nil(t, asset)
}

func TestArchiveAsset(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)

	require.NoError(t, env.assets.Archive(admin, a.ID))

	stored, err := env.assets.Get(a.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsArchived)
	assert.Equal(t, domain.StateWithdrawn, stored.State)

	visible, err := env.assets.List(false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := env.assets.List(true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionDelete, entry.Action)
	assert.Equal(t, "Archivage actif", entry.Description)

	// Archiving twice neither fails nor logs again.
	require.NoError(t, env.assets.Archive(admin, a.ID))
	assert.Equal(t, entry.ID, env.lastLog(t).ID)
}

func TestArchiveUnknownIDIsSilentNoOp(t *testing.T) {
	env := newTestEnv(t)
	assert.NoError(t, env.assets.Archive(testAdmin(), "missing-id"))
}

func TestCustomAttributesValidatedOnWrite(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddCustomField(admin, "Numéro de série", domain.FieldText, nil)
	require.NoError(t, err)
	cfg, err = env.config.AddCustomField(admin, "Valeur", domain.FieldNumber, nil)
	require.NoError(t, err)

	var textID, numberID string
	for _, f := range cfg.CustomFields {
		switch f.Label {
		case "Numéro de série":
			textID = f.ID
		case "Valeur":
			numberID = f.ID
		}
	}

	input := newAssetInput()
	input.CustomAttributes = domain.CustomAttributes{textID: "SN-1234", numberID: "1500"}
	a, err := env.assets.Create(admin, input)
	require.NoError(t, err)
	assert.Equal(t, "SN-1234", a.CustomAttributes[textID])

	input.CustomAttributes = domain.CustomAttributes{numberID: "pas un nombre"}
	_, err = env.assets.Create(admin, input)
	assert.Error(t, err)

	input.CustomAttributes = domain.CustomAttributes{"unknown-field": "x"}
	_, err = env.assets.Create(admin, input)
	assert.Error(t, err)
}

func TestStatsCountNonArchivedOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a1, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)

	input := newAssetInput()
	input.Location = "ALP"
	input.Category = "DD"
	_, err = env.assets.Create(admin, input)
	require.NoError(t, err)

	require.NoError(t, env.assets.Archive(admin, a1.ID))

	stats, err := env.assets.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 1, stats.GoodCondition)
	assert.Equal(t, 0, stats.BadCondition)
	assert.Equal(t, 1, stats.DistinctLocations)
	require.Len(t, stats.ByCategory, 1)
	assert.Equal(t, "DD", stats.ByCategory[0].Name)
	assert.Equal(t, 1, stats.ByCategory[0].Count)
}

func TestSearchFiltersAndPages(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	a := newAssetInput()
	a.Name = "Ordinateur portable"
	a.Holder = "Mballa"
	_, err := env.assets.Create(admin, a)
	require.NoError(t, err)

	b := newAssetInput()
	b.Category = "DD"
	b.Name = "Bureau de direction"
	_, err = env.assets.Create(admin, b)
	require.NoError(t, err)

	res, err := env.assets.Search("", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)

	res, err = env.assets.Search("ordinateur", 1)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Ordinateur portable", res.Items[0].Name)

	// Holder matches too.
	res, err = env.assets.Search("mballa", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	// Code substring.
	res, err = env.assets.Search("EDC-DD", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	// Pages past the end are empty but well-formed.
	res, err = env.assets.Search("", 3)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 3, res.Page)
}

func TestAuditListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	_, err := env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)
	_, err = env.assets.Create(admin, newAssetInput())
	require.NoError(t, err)

	logs, err := env.audit.List()
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-EDC-CC-0002", logs[0].TargetCode)
	assert.Equal(t, "2024-EDC-CC-0001", logs[1].TargetCode)
}
