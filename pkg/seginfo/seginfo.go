// Package seginfo provides utilities for naming and discovering the
// sequentially numbered log segment files that make up an IgniteDB data
// directory.
//
// Filename Format: N.db
//
// Where N is the segment's generation number, rendered in decimal with no
// padding (1.db, 2.db, ... 41.db). Generation numbers are assigned in
// strictly increasing order and are never reused, so lexicographic sort
// order does not match creation order once a generation reaches double
// digits; callers that need creation order must sort by parsed ID rather
// than by filename.
//
// Example filenames:
//
//	1.db
//	2.db
//	41.db
package seginfo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ignitedb/ignitedb/pkg/filesys"
)

// Extension is the fixed suffix every segment file carries.
const Extension = ".db"

// GetLastSegmentID scans segmentDir and returns the highest generation
// number present. It returns (0, false, nil) when the directory holds no
// segment files yet, signaling the caller should bootstrap at generation 1.
func GetLastSegmentID(segmentDir string) (uint64, bool, error) {
	ids, err := ListSegmentIDs(segmentDir)
	if err != nil {
		return 0, false, fmt.Errorf("failed to discover latest segment: %w", err)
	}

	if len(ids) == 0 {
		return 0, false, nil
	}

	return ids[len(ids)-1], true, nil
}

// ListSegmentIDs returns every generation number present in segmentDir,
// sorted ascending by numeric value.
func ListSegmentIDs(segmentDir string) ([]uint64, error) {
	searchPattern := filepath.Join(segmentDir, "*"+Extension)

	matchingFiles, err := filesys.ReadDir(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment directory with pattern %s: %w", searchPattern, err)
	}

	ids := make([]uint64, 0, len(matchingFiles))
	for _, path := range matchingFiles {
		id, ok := ParseSegmentID(path)
		if !ok {
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GenerateName returns the filename for the given generation number.
func GenerateName(id uint64) string {
	return strconv.FormatUint(id, 10) + Extension
}

// Path joins segmentDir with the filename for the given generation number.
func Path(segmentDir string, id uint64) string {
	return filepath.Join(segmentDir, GenerateName(id))
}

// ParseSegmentID extracts the generation number from a segment filename or
// path. The second return value is false when fullPath does not look like
// a segment file.
func ParseSegmentID(fullPath string) (uint64, bool) {
	_, filename := filepath.Split(fullPath)

	if !strings.HasSuffix(filename, Extension) {
		return 0, false
	}

	idStr := strings.TrimSuffix(filename, Extension)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
