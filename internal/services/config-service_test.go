package services

import (
	"strings"
	"testing"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGetFallsBackToDefaults(t *testing.T) {
	db, err := repository.Open(":memory:")
	require.NoError(t, err)
	repo := repository.NewConfigRepository(db)
	svc := NewConfigService(repo, NewAuditService(repository.NewLogRepository(db), nil))

	// Nothing stored yet: defaults are served without being persisted.
	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Electricity Development Corporation", cfg.CompanyName)
	assert.True(t, cfg.HasCategory("CC"))

	// A config saved before core fields existed gets them backfilled.
	old := domain.DefaultConfig()
	old.CoreFields = nil
	require.NoError(t, repo.Save(old))

	cfg, err = svc.Get()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.CoreFields)
	assert.Equal(t, "Porte", cfg.CoreFieldLabel("door", ""))
}

func TestUpdateCompanyName(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.UpdateCompanyName(admin, "  EDC Cameroun  ")
	require.NoError(t, err)
	assert.Equal(t, "EDC Cameroun", cfg.CompanyName)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionConfig, entry.Action)
	assert.Contains(t, entry.Description, "EDC Cameroun")

	_, err = env.config.UpdateCompanyName(admin, "   ")
	assert.Error(t, err)
}

func TestLocationAddRemove(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddLocation(admin, "nkm")
	require.NoError(t, err)
	assert.Contains(t, cfg.Locations, "NKM")

	_, err = env.config.AddLocation(admin, "NKM")
	assert.Error(t, err)

	cfg, err = env.config.RemoveLocation(admin, "NKM")
	require.NoError(t, err)
	assert.NotContains(t, cfg.Locations, "NKM")
}

func TestRenameListValues(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	// Locations keep their position and the new code is upper-cased.
	cfg, err := env.config.RenameLocation(admin, "ALP", "aln")
	require.NoError(t, err)
	assert.NotContains(t, cfg.Locations, "ALP")
	assert.Equal(t, "ALN", cfg.Locations[0])

	_, err = env.config.RenameLocation(admin, "ZZZ", "AAA")
	assert.Error(t, err)

	cfg, err = env.config.RenameState(admin, "Bon état", "Excellent état")
	require.NoError(t, err)
	assert.Contains(t, cfg.States, "Excellent état")
	assert.NotContains(t, cfg.States, "Bon état")

	cfg, err = env.config.RenameHolderPresence(admin, "Présent", "Sur site")
	require.NoError(t, err)
	assert.Contains(t, cfg.HolderPresences, "Sur site")

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionConfig, entry.Action)
	assert.Contains(t, entry.Description, "Sur site")
}

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddCategory(admin, "xx", "Catégorie de test")
	require.NoError(t, err)
	assert.True(t, cfg.HasCategory("XX"))
	assert.Equal(t, "Catégorie de test", cfg.CategoriesDescriptions["XX"])

	_, err = env.config.AddCategory(admin, "XX", "doublon")
	assert.Error(t, err)

	cfg, err = env.config.AddCategoryItem(admin, "XX", "Perceuse")
	require.NoError(t, err)
	assert.Contains(t, cfg.Categories["XX"], "Perceuse")

	_, err = env.config.AddCategoryItem(admin, "XX", "Perceuse")
	assert.Error(t, err)

	_, err = env.config.AddCategoryItem(admin, "YY", "Perceuse")
	assert.Error(t, err)

	cfg, err = env.config.RenameCategoryItem(admin, "XX", "Perceuse", "Perceuse électrique")
	require.NoError(t, err)
	assert.Contains(t, cfg.Categories["XX"], "Perceuse électrique")
	assert.NotContains(t, cfg.Categories["XX"], "Perceuse")

	_, err = env.config.RenameCategoryItem(admin, "XX", "Scie", "Scie sauteuse")
	assert.Error(t, err)

	cfg, err = env.config.UpdateCategoryDescription(admin, "XX", "Outillage de chantier")
	require.NoError(t, err)
	assert.Equal(t, "Outillage de chantier", cfg.CategoriesDescriptions["XX"])

	_, err = env.config.UpdateCategoryDescription(admin, "YY", "n'existe pas")
	assert.Error(t, err)

	cfg, err = env.config.RemoveCategoryItem(admin, "XX", "Perceuse électrique")
	require.NoError(t, err)
	assert.Empty(t, cfg.Categories["XX"])

	cfg, err = env.config.RemoveCategory(admin, "XX")
	require.NoError(t, err)
	assert.False(t, cfg.HasCategory("XX"))
	assert.NotContains(t, cfg.CategoriesDescriptions, "XX")
}

func TestAddCustomFieldValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	_, err := env.config.AddCustomField(admin, "", domain.FieldText, nil)
	assert.Error(t, err)

	_, err = env.config.AddCustomField(admin, "Champ", "mystery", nil)
	assert.Error(t, err)

	_, err = env.config.AddCustomField(admin, "Fournisseur", domain.FieldSelect, nil)
	assert.Error(t, err)

	cfg, err := env.config.AddCustomField(admin, "Fournisseur", domain.FieldSelect, []string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, cfg.CustomFields, 1)
	assert.True(t, strings.HasPrefix(cfg.CustomFields[0].ID, "field_"))
	assert.False(t, cfg.CustomFields[0].IsArchived)
}

func TestUpdateCustomFieldKeepsID(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddCustomField(admin, "Fournisseur", domain.FieldSelect, []string{"A", "B"})
	require.NoError(t, err)
	id := cfg.CustomFields[0].ID

	cfg, err = env.config.UpdateCustomField(admin, id, "Fournisseur agréé", domain.FieldSelect, []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, id, cfg.CustomFields[0].ID)
	assert.Equal(t, "Fournisseur agréé", cfg.CustomFields[0].Label)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.CustomFields[0].Options)

	// Switching away from select drops the options.
	cfg, err = env.config.UpdateCustomField(admin, id, "Fournisseur agréé", domain.FieldText, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, domain.FieldText, cfg.CustomFields[0].Type)
	assert.Nil(t, cfg.CustomFields[0].Options)

	_, err = env.config.UpdateCustomField(admin, "missing", "X", domain.FieldText, nil)
	assert.Error(t, err)
}

func TestDeleteCustomFieldPermanently(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddCustomField(admin, "Numéro de série", domain.FieldText, nil)
	require.NoError(t, err)
	id := cfg.CustomFields[0].ID

	cfg, err = env.config.DeleteCustomField(admin, id)
	require.NoError(t, err)
	assert.Empty(t, cfg.CustomFields)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionConfig, entry.Action)
	assert.Contains(t, entry.Description, "Suppression définitive")

	_, err = env.config.DeleteCustomField(admin, id)
	assert.Error(t, err)
}

func TestArchiveCustomFieldKeepsValues(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddCustomField(admin, "Numéro de série", domain.FieldText, nil)
	require.NoError(t, err)
	id := cfg.CustomFields[0].ID

	input := newAssetInput()
	input.CustomAttributes = domain.CustomAttributes{id: "SN-1"}
	a, err := env.assets.Create(admin, input)
	require.NoError(t, err)

	cfg, err = env.config.ToggleCustomFieldArchive(admin, id)
	require.NoError(t, err)
	assert.True(t, cfg.CustomFields[0].IsArchived)

	stored, err := env.assets.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "SN-1", stored.CustomAttributes[id])

	// Toggling again un-archives the field.
	cfg, err = env.config.ToggleCustomFieldArchive(admin, id)
	require.NoError(t, err)
	assert.False(t, cfg.CustomFields[0].IsArchived)

	_, err = env.config.ToggleCustomFieldArchive(admin, "missing")
	assert.Error(t, err)
}

func TestUpdateCoreField(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.UpdateCoreField(admin, "door", "Bureau", false)
	require.NoError(t, err)
	assert.Equal(t, "Bureau", cfg.CoreFieldLabel("door", "Porte"))
	for _, f := range cfg.CoreFields {
		if f.Key == "door" {
			assert.False(t, f.IsVisible)
		}
	}

	_, err = env.config.UpdateCoreField(admin, "nope", "X", true)
	assert.Error(t, err)
}

func TestValidateCustomAttributesTypes(t *testing.T) {
	env := newTestEnv(t)
	admin := testAdmin()

	cfg, err := env.config.AddCustomField(admin, "Valeur", domain.FieldNumber, nil)
	require.NoError(t, err)
	numberID := cfg.CustomFields[0].ID
	cfg, err = env.config.AddCustomField(admin, "Date d'achat", domain.FieldDate, nil)
	require.NoError(t, err)
	dateID := cfg.CustomFields[1].ID
	cfg, err = env.config.AddCustomField(admin, "Sous garantie", domain.FieldBoolean, nil)
	require.NoError(t, err)
	boolID := cfg.CustomFields[2].ID
	cfg, err = env.config.AddCustomField(admin, "Fournisseur", domain.FieldSelect, []string{"A", "B"})
	require.NoError(t, err)
	selectID := cfg.CustomFields[3].ID

	ok := domain.CustomAttributes{
		numberID: "12.5",
		dateID:   "2024-06-30",
		boolID:   "true",
		selectID: "B",
	}
	assert.NoError(t, env.config.ValidateCustomAttributes(ok))

	// Empty values are allowed on any type.
	assert.NoError(t, env.config.ValidateCustomAttributes(domain.CustomAttributes{numberID: ""}))

	for id, bad := range map[string]string{
		numberID: "abc",
		dateID:   "30/06/2024",
		boolID:   "peut-être",
		selectID: "C",
	} {
		err := env.config.ValidateCustomAttributes(domain.CustomAttributes{id: bad})
		assert.Error(t, err, "value %q for field %s", bad, id)
	}
}
