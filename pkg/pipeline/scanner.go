package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Scanner finds candidate files under a source directory
type Scanner struct {
	dir     string
	pattern string
}

// 🏭 NewScanner creates a scanner for the given directory and glob pattern.
// A plain pattern like "*.inc" matches only the top level; "**/*.inc"
// descends into subdirectories.
func NewScanner(dir, pattern string) *Scanner {
	return &Scanner{dir: dir, pattern: pattern}
}

// 📋 Scan returns the relative paths of matching files, sorted so a run
// processes files in a deterministic order.
func (s *Scanner) Scan(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(s.dir)
	if err != nil {
		return nil, errors.Errorf("reading source directory %s: %w", s.dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("source path %s is not a directory", s.dir)
	}

	var files []string
	err = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return errors.Errorf("resolving relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		matched, err := doublestar.Match(s.pattern, rel)
		if err != nil {
			return errors.Errorf("matching pattern %q: %w", s.pattern, err)
		}
		if matched {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", s.dir, err)
	}

	sort.Strings(files)
	logger.Debug().Str("dir", s.dir).Str("pattern", s.pattern).Int("files", len(files)).Msg("scanned source directory")
	return files, nil
}
