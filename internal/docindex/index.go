package docindex

import (
	"path"
	"sort"
	"strconv"
	"sync/atomic"
)

// CategoryADR marks Architecture Decision Records; records carrying it are
// surfaced through the index's ordered ADR list.
const CategoryADR = "adr"

// CategoryAgreements marks team agreement documents.
const CategoryAgreements = "agreements"

// ADRDocument pairs a record with the numeric identifier parsed from the
// leading digits of its file name.
type ADRDocument struct {
	Number   int          `json:"number"`
	Resource ResourceInfo `json:"resource"`
}

// DocumentIndex is an immutable snapshot of one scan. All derived structures
// are computed once in NewIndex and never mutated afterwards; a rescan
// builds a whole new index and swaps it into the Store.
type DocumentIndex struct {
	records []ResourceInfo // sorted by URI
	byURI   map[string]*ResourceInfo

	byCategory map[string][]ResourceInfo
	byArea     map[string][]ResourceInfo
	byLang     map[string][]ResourceInfo

	adrs []ADRDocument // ascending by (Number, URI)
}

// NewIndex builds a snapshot from scanned records. Callers must have already
// resolved URI collisions; duplicate URIs here keep the first occurrence.
func NewIndex(records []ResourceInfo) *DocumentIndex {
	sorted := make([]ResourceInfo, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].URI < sorted[j].URI })

	idx := &DocumentIndex{
		records:    sorted,
		byURI:      make(map[string]*ResourceInfo, len(sorted)),
		byCategory: make(map[string][]ResourceInfo),
		byArea:     make(map[string][]ResourceInfo),
		byLang:     make(map[string][]ResourceInfo),
	}

	for i := range sorted {
		r := &sorted[i]
		if _, ok := idx.byURI[r.URI]; ok {
			continue
		}
		idx.byURI[r.URI] = r

		idx.byArea[r.Area] = append(idx.byArea[r.Area], *r)
		idx.byLang[r.Lang.GroupKey()] = append(idx.byLang[r.Lang.GroupKey()], *r)
		for _, tag := range r.Category {
			idx.byCategory[tag] = append(idx.byCategory[tag], *r)
		}

		if r.HasCategory(CategoryADR) {
			if n, ok := adrNumber(r.FilePath); ok {
				idx.adrs = append(idx.adrs, ADRDocument{Number: n, Resource: *r})
			}
		}
	}

	sort.Slice(idx.adrs, func(i, j int) bool {
		if idx.adrs[i].Number != idx.adrs[j].Number {
			return idx.adrs[i].Number < idx.adrs[j].Number
		}
		return idx.adrs[i].Resource.URI < idx.adrs[j].Resource.URI
	})

	return idx
}

// adrNumber parses the leading decimal digits of the file's base name.
// "001-foo.mdx" yields 1; names without a digit prefix are not ADR-numbered.
func adrNumber(filePath string) (int, bool) {
	base := path.Base(filePath)
	end := 0
	for end < len(base) && base[end] >= '0' && base[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(base[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Records returns all records ordered by URI. The slice is shared; callers
// must not modify it.
func (idx *DocumentIndex) Records() []ResourceInfo {
	return idx.records
}

// Len reports the number of indexed documents.
func (idx *DocumentIndex) Len() int {
	return len(idx.records)
}

// Lookup resolves a record by its docs:// URI.
func (idx *DocumentIndex) Lookup(uri string) (ResourceInfo, bool) {
	r, ok := idx.byURI[uri]
	if !ok {
		return ResourceInfo{}, false
	}
	return *r, true
}

// ADRDocuments returns the precomputed ADR list, ascending by number.
func (idx *DocumentIndex) ADRDocuments() []ADRDocument {
	return idx.adrs
}

// Store holds the currently published index and allows lock-free reads
// while a rescan prepares a replacement snapshot.
type Store struct {
	current atomic.Pointer[DocumentIndex]
}

// NewStore creates a store publishing the given initial snapshot.
func NewStore(idx *DocumentIndex) *Store {
	s := &Store{}
	s.current.Store(idx)
	return s
}

// Snapshot returns the currently published index.
func (s *Store) Snapshot() *DocumentIndex {
	return s.current.Load()
}

// Publish atomically replaces the published index.
func (s *Store) Publish(idx *DocumentIndex) {
	s.current.Store(idx)
}
