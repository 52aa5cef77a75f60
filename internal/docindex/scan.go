package docindex

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/Citizen4our/arch-mcp-server/internal/logging"
)

// ScanStats summarizes a single walk over the documentation root.
type ScanStats struct {
	Seen               int           // regular files visited
	Indexed            int           // files that produced an index record
	SkippedUnsupported int           // extension not in the mime table
	SkippedUnmatched   int           // no rule matched, or classification invalid
	Duplicates         int           // records dropped because their URI was taken
	Duration           time.Duration
}

// Scanner walks a documentation root and classifies every supported file
// against an ordered rule set.
type Scanner struct {
	root   string
	rules  *RuleSet
	logger *logging.AppLogger
}

// NewScanner creates a scanner rooted at an absolute directory path.
func NewScanner(root string, rules *RuleSet, logger *logging.AppLogger) *Scanner {
	return &Scanner{root: root, rules: rules, logger: logger}
}

// Scan walks the root in lexical order and returns a fresh index snapshot.
// Individual file failures are counted and logged, never fatal: a scan over
// a readable root always yields an index, possibly an empty one.
func (s *Scanner) Scan() (*DocumentIndex, ScanStats, error) {
	start := time.Now()
	var stats ScanStats
	var records []ResourceInfo
	seen := make(map[string]string) // uri -> file path that claimed it

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			if d != nil && d.IsDir() {
				s.logger.Warn("skipping unreadable directory", "path", path, "error", err)
				return fs.SkipDir
			}
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		stats.Seen++

		mime, ok := MimeTypeFor(d.Name())
		if !ok {
			stats.SkippedUnsupported++
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			s.logger.Warn("cannot relativize path", "path", path, "error", relErr)
			stats.SkippedUnmatched++
			return nil
		}
		rel = filepath.ToSlash(rel)

		cls, matched := s.rules.Classify(rel)
		if !matched {
			stats.SkippedUnmatched++
			s.logger.Debug("no rule matched", "path", rel)
			return nil
		}
		if cls.Area == "" || len(cls.Category) == 0 {
			stats.SkippedUnmatched++
			s.logger.Warn("rule expanded to empty classification", "path", rel)
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			s.logger.Warn("cannot stat file", "path", path, "error", infoErr)
			stats.SkippedUnmatched++
			return nil
		}

		uri := BuildURI(cls.Area, rel)
		if prev, dup := seen[uri]; dup {
			stats.Duplicates++
			s.logger.Warn("duplicate resource uri, keeping first", "uri", uri, "kept", prev, "dropped", rel)
			return nil
		}
		seen[uri] = rel

		records = append(records, ResourceInfo{
			URI:         uri,
			FilePath:    rel,
			Area:        cls.Area,
			Lang:        cls.Lang,
			Category:    cls.Category,
			Project:     cls.Project,
			MimeType:    mime,
			Size:        info.Size(),
			Description: describe(cls.Area, cls.Lang, cls.Category),
		})
		stats.Indexed++
		return nil
	})
	if err != nil {
		return nil, stats, &IOError{Path: s.root, Err: err}
	}

	stats.Duration = time.Since(start)
	return NewIndex(records), stats, nil
}
