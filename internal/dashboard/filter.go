package dashboard

import (
	"sort"
	"strings"

	"github.com/cloudvault/cloudvault-cli/internal/models"
)

// Search returns the records whose names contain query, matched
// case-insensitively. The result is always a subset of the input; an empty
// query returns the input unchanged. The input is never mutated.
func Search(files []models.FileRecord, query string) []models.FileRecord {
	if query == "" {
		return files
	}
	q := strings.ToLower(query)
	matched := make([]models.FileRecord, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), q) {
			matched = append(matched, f)
		}
	}
	return matched
}

// SortKey selects a file ordering.
type SortKey string

const (
	SortByName SortKey = "name" // lexicographic, case-insensitive
	SortBySize SortKey = "size" // descending, missing sizes last
	SortByDate SortKey = "date" // newest first, missing dates last
)

// ParseSortKey validates a --sort flag value.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByName, SortBySize, SortByDate:
		return SortKey(s), true
	}
	return "", false
}

// Sort returns a sorted copy of files. The input is never mutated; callers
// keep the cached list in backend order.
func Sort(files []models.FileRecord, key SortKey) []models.FileRecord {
	sorted := make([]models.FileRecord, len(files))
	copy(sorted, files)

	switch key {
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	case SortBySize:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectiveKB() > sorted[j].EffectiveKB()
		})
	case SortByDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UploadTime().After(sorted[j].UploadTime())
		})
	}
	return sorted
}
