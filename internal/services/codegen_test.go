package services

import (
	"testing"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildCodePreviewFirstInPrefix(t *testing.T) {
	code, complete := BuildCodePreview("2024", "EDC", "CC", nil)
	assert.True(t, complete)
	assert.Equal(t, "2024-EDC-CC-0001", code)
}

func TestBuildCodePreviewIncrementsHighestSequence(t *testing.T) {
	assets := []domain.Asset{
		{Code: "2024-EDC-CC-0001"},
		{Code: "2024-EDC-CC-0007"},
		{Code: "2024-EDC-CC-0003"},
	}
	code, complete := BuildCodePreview("2024", "EDC", "CC", assets)
	assert.True(t, complete)
	assert.Equal(t, "2024-EDC-CC-0008", code)
}

func TestBuildCodePreviewScopesByFullPrefix(t *testing.T) {
	assets := []domain.Asset{
		{Code: "2024-EDC-CC-0009"},
		{Code: "2023-EDC-CC-0042"}, // other year
		{Code: "2024-ALP-CC-0042"}, // other location
		{Code: "2024-EDC-DD-0042"}, // other category
	}
	code, _ := BuildCodePreview("2024", "EDC", "CC", assets)
	assert.Equal(t, "2024-EDC-CC-0010", code)
}

func TestBuildCodePreviewIgnoresMalformedCodes(t *testing.T) {
	assets := []domain.Asset{
		{Code: "2024-EDC-CC-0002"},
		{Code: "2024-EDC-CC-badseq"},
		{Code: "2024-EDC-CC-0005-extra"},
		{Code: "2024-EDC-CC"},
	}
	code, _ := BuildCodePreview("2024", "EDC", "CC", assets)
	assert.Equal(t, "2024-EDC-CC-0003", code)
}

func TestBuildCodePreviewPartialInputs(t *testing.T) {
	code, complete := BuildCodePreview("2024", "", "CC", nil)
	assert.False(t, complete)
	assert.Equal(t, "2024-CC", code)

	code, complete = BuildCodePreview("", "", "", nil)
	assert.False(t, complete)
	assert.Equal(t, "", code)
}

func TestBuildCodePreviewPadsSequence(t *testing.T) {
	assets := []domain.Asset{{Code: "2024-EDC-CC-0099"}}
	code, _ := BuildCodePreview("2024", "EDC", "CC", assets)
	assert.Equal(t, "2024-EDC-CC-0100", code)
}
