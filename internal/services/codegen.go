package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SundayYogurt/inventory_service/internal/domain"
)

// BuildCodePreview derives the inventory code for a new asset from
// year+location+category and the current asset collection. When any input
// is missing it returns the partial prefix and complete=false; such a code
// must not be materialized into an asset.
//
// The sequence is scanned live at preview time, so two creations sharing a
// prefix computed before either is persisted would collide. Accepted
// limitation: the service targets a single active user session.
func BuildCodePreview(year, location, category string, assets []domain.Asset) (string, bool) {
	parts := []string{}
	for _, p := range []string{year, location, category} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	code := strings.Join(parts, "-")

	if year == "" || location == "" || category == "" {
		return code, false
	}

	prefix := fmt.Sprintf("%s-%s-%s", year, location, category)
	next := maxSequence(prefix, assets) + 1
	return fmt.Sprintf("%s-%04d", prefix, next), true
}

// maxSequence returns the highest sequence already used under the exact
// prefix. Codes not shaped as four hyphen-delimited segments are ignored.
func maxSequence(prefix string, assets []domain.Asset) int {
	max := 0
	for _, a := range assets {
		if !strings.HasPrefix(a.Code, prefix+"-") {
			continue
		}
		segs := strings.Split(a.Code, "-")
		if len(segs) != 4 {
			continue
		}
		seq, err := strconv.Atoi(segs[3])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}
