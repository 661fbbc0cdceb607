package options

import "time"

const (
	// Specifies the default base directory where IgniteDB will store its data files.
	// If no other directory is specified during initialization, this path will be used.
	DefaultDataDir = "/var/lib/ignitedb"

	// Default value of Options.CompactInterval. Compaction is triggered by
	// DefaultCompactionThreshold, not by this interval.
	DefaultCompactInterval = time.Hour * 5

	// Specifies the default subdirectory within the main data directory
	// where segment files will be stored.
	DefaultSegmentDirectory = "/segments"

	// DefaultCompactionThreshold is the number of stale bytes a writer will
	// tolerate across all segment files before triggering compaction. A
	// byte is "stale" once a later Set or Rm overwrites or removes the key
	// it belongs to, so this bounds how much dead weight accumulates
	// between compaction passes.
	DefaultCompactionThreshold uint64 = 1 << 20 // 1MB
)

// Holds the default configuration settings for an IgniteDB instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactInterval:     DefaultCompactInterval,
	CompactionThreshold: DefaultCompactionThreshold,
	SegmentOptions: &segmentOptions{
		Directory: DefaultSegmentDirectory,
	},
}

func NewDefaultOptions() Options {
	return defaultOptions
}
