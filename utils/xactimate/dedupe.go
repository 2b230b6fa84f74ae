package xactimate

import (
	"strings"

	"github.com/rapestimate/estimate-parser/dto"
)

type itemKey struct {
	description string
	quantity    float64
	unit        string
}

func keyOf(item dto.LineItem) itemKey {
	return itemKey{
		description: strings.ToUpper(strings.TrimSpace(item.Description)),
		quantity:    item.Quantity,
		unit:        strings.ToUpper(item.Unit),
	}
}

// Deduplicate drops items whose description, quantity and unit repeat an
// earlier item. The first occurrence is kept unchanged; later copies are
// discarded, not merged.
func Deduplicate(items []dto.LineItem) ([]dto.LineItem, int) {
	seen := make(map[itemKey]struct{}, len(items))
	unique := make([]dto.LineItem, 0, len(items))

	for _, item := range items {
		k := keyOf(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, item)
	}

	return unique, len(items) - len(unique)
}
