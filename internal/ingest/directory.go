package ingest

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/nomadsurfing/invoices-tracker/internal/common"
)

// Default extensions for invoice discovery (lowercase, without '.').
var defaultExts = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// DirStats aggregates one directory collection pass.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// CollectDirectory walks root and returns the invoice document paths it finds,
// filtered by includeExts (or the pdf/txt defaults) and skipping hidden files
// and directories. Walk errors on individual entries are counted, not fatal.
func CollectDirectory(root string, includeExts []string) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, common.WrapError(common.ErrInvalidInput, "root path is required")
	}
	exts := extSet(includeExts)

	var paths []string
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil // keep walking
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !allowed(path, exts) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, err
	}
	return paths, stats, nil
}

func extSet(includeExts []string) map[string]struct{} {
	if len(includeExts) == 0 {
		return defaultExts
	}
	exts := make(map[string]struct{}, len(includeExts))
	for _, e := range includeExts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts[e] = struct{}{}
		}
	}
	return exts
}

func allowed(path string, exts map[string]struct{}) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, ok := exts[ext]
	return ok
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
