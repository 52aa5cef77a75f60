package docindex

import "strings"

// Pagination bounds for List.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Filters narrows a listing. Each field, when non-empty, holds a
// pipe-separated alternation of acceptable values ("php|go" matches either).
// Dimensions combine with AND; alternatives within one dimension with OR.
type Filters struct {
	Area     string
	Lang     string
	Category string
}

func (f Filters) isZero() bool {
	return f.Area == "" && f.Lang == "" && f.Category == ""
}

// matchesAlternation reports whether value equals any of the pipe-separated
// alternatives. Alternatives are trimmed; empty alternatives never match.
func matchesAlternation(filter, value string) bool {
	for _, alt := range strings.Split(filter, "|") {
		alt = strings.TrimSpace(alt)
		if alt != "" && alt == value {
			return true
		}
	}
	return false
}

func (f Filters) matches(r ResourceInfo) bool {
	if f.Area != "" && !matchesAlternation(f.Area, r.Area) {
		return false
	}
	if f.Lang != "" && !matchesAlternation(f.Lang, r.Lang.GroupKey()) {
		return false
	}
	if f.Category != "" {
		any := false
		for _, tag := range r.Category {
			if matchesAlternation(f.Category, tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// NormalizePage treats absent or negative pages as the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizeLimit treats 0 as "not supplied" and clamps everything else to
// [1, MaxPageLimit].
func NormalizeLimit(limit int) int {
	if limit == 0 {
		return DefaultPageLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// List returns one page of records matching the filters, plus the total
// match count before pagination. Results keep the index's URI ordering, so
// repeated calls over the same snapshot page consistently. Out-of-range
// pages return an empty slice with the correct total.
func (idx *DocumentIndex) List(f Filters, page, limit int) ([]ResourceInfo, int) {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)

	var matched []ResourceInfo
	if f.isZero() {
		matched = idx.records
	} else {
		for _, r := range idx.records {
			if f.matches(r) {
				matched = append(matched, r)
			}
		}
	}

	total := len(matched)
	start := (page - 1) * limit
	if start >= total {
		return nil, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]ResourceInfo, end-start)
	copy(out, matched[start:end])
	return out, total
}

// Overview aggregates every record belonging to one project.
type Overview struct {
	Project    string
	Total      int
	TotalSize  int64
	ByCategory map[string][]ResourceInfo
	ByArea     map[string][]ResourceInfo
	ByLang     map[string][]ResourceInfo
	Documents  []ResourceInfo
}

// ProjectOverview groups a project's records by category, area and lang.
// Project matching is exact and case-sensitive; an unknown project is a
// NotFoundError, not an empty overview.
func (idx *DocumentIndex) ProjectOverview(project string) (*Overview, error) {
	ov := &Overview{
		Project:    project,
		ByCategory: make(map[string][]ResourceInfo),
		ByArea:     make(map[string][]ResourceInfo),
		ByLang:     make(map[string][]ResourceInfo),
	}

	for _, r := range idx.records {
		if r.Project != project {
			continue
		}
		ov.Total++
		ov.TotalSize += r.Size
		ov.Documents = append(ov.Documents, r)
		ov.ByArea[r.Area] = append(ov.ByArea[r.Area], r)
		ov.ByLang[r.Lang.GroupKey()] = append(ov.ByLang[r.Lang.GroupKey()], r)
		for _, tag := range r.Category {
			ov.ByCategory[tag] = append(ov.ByCategory[tag], r)
		}
	}

	if ov.Total == 0 {
		return nil, &NotFoundError{Kind: "project", Key: project}
	}
	return ov, nil
}

// AgreementsByLang returns agreement documents for one language, in URI
// order. Unknown languages yield an empty result.
func (idx *DocumentIndex) AgreementsByLang(lang string) []ResourceInfo {
	var out []ResourceInfo
	for _, r := range idx.byCategory[CategoryAgreements] {
		if r.Lang.GroupKey() == lang {
			out = append(out, r)
		}
	}
	return out
}
