package xactimate

import (
	"slices"
	"sort"
	"strings"

	"github.com/rapestimate/estimate-parser/dto"
)

// priorityCategories lead the category listing in this order; everything
// else follows alphabetically.
var priorityCategories = []string{
	CategoryCleaning,
	CategoryDemolition,
	CategoryWaterExtraction,
	CategoryTemporaryRepairs,
}

// Aggregate groups items by category and returns the rollups in display order.
func Aggregate(items []dto.LineItem) []dto.CategorySummary {
	index := map[string]int{}
	var summaries []dto.CategorySummary

	for _, item := range items {
		name := item.Category
		if name == "" {
			name = CategoryGeneral
		}

		i, ok := index[name]
		if !ok {
			i = len(summaries)
			index[name] = i
			summaries = append(summaries, dto.CategorySummary{Name: name, UniqueItems: []string{}})
		}

		s := &summaries[i]
		s.RCV += item.RCV
		s.Depreciation += item.Depreciation
		s.ACV += item.ACV
		s.ItemCount++

		desc := strings.TrimSpace(item.Description)
		if !slices.Contains(s.UniqueItems, desc) {
			s.UniqueItems = append(s.UniqueItems, desc)
		}
	}

	SortCategories(summaries)
	return summaries
}

// SortCategories orders summaries by the fixed priority list, then by name.
func SortCategories(summaries []dto.CategorySummary) {
	sort.SliceStable(summaries, func(a, b int) bool {
		pa, pb := categoryPriority(summaries[a].Name), categoryPriority(summaries[b].Name)
		if pa != pb {
			return pa < pb
		}
		return summaries[a].Name < summaries[b].Name
	})
}

func categoryPriority(name string) int {
	for i, p := range priorityCategories {
		if p == name {
			return i
		}
	}
	return len(priorityCategories)
}
