package common

import "strings"

// SortOrder はソート順
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc"/"desc" (case-insensitive). Empty falls back to def.
func ParseSortOrder(s string, def SortOrder) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, true
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	default:
		return def, false
	}
}

// SQL returns the keyword used in ORDER BY.
func (o SortOrder) SQL() string {
	if o == SortAsc {
		return "ASC"
	}
	return "DESC"
}
