// Package metadata supplies descriptor records from a directory of JSON
// files, one file per scorer.
package metadata

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danielxmed/nobra-calculator/internal/errors"
	"github.com/danielxmed/nobra-calculator/ports"
)

// FileSource enumerates descriptor JSON files from a directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a descriptor source over a metadata directory.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Enumerate reads every *.json file in the directory. Any unreadable or
// malformed file fails the whole enumeration: reload must see a complete
// source or none at all.
func (s *FileSource) Enumerate(ctx context.Context) ([]ports.RawDescriptor, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.SourceUnavailable("cannot read metadata directory", err)
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, de.Name()))
	}
	sort.Strings(paths)

	records := make([]ports.RawDescriptor, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.SourceUnavailable("cannot read descriptor file "+path, err)
		}
		var record map[string]interface{}
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, errors.Wrapf(err, "descriptor file %s is not valid JSON", path)
		}
		records = append(records, record)
	}

	return records, nil
}
