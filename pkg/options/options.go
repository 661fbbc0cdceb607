// Package options provides data structures and functions for configuring
// the Ignite database. It defines various parameters that control Ignite's
// storage behavior, performance, and maintenance operations, such as
// directory paths, segment characteristics, and compaction thresholds.
package options

import (
	"strings"
	"time"
)

// Defines configurable parameters for segment file placement.
type segmentOptions struct {
	// Specifies where segment files are stored, relative to DataDir.
	//
	// Default: "/segments"
	Directory string `json:"directory"`
}

// Defines the configuration parameters for Ignite DB.
// It provides control over storage, performance and maintenance aspects.
type Options struct {
	// Specifies the base path where files will be stored.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// Holds a compaction interval. No component reads it: compaction runs
	// only when a write pushes the stale-byte count over
	// CompactionThreshold.
	//
	// Default: 5h
	CompactInterval time.Duration `json:"compactInterval"`

	// Defines the number of stale bytes tolerated across all segment files
	// before a write triggers compaction.
	//
	// Default: 1MB
	CompactionThreshold uint64 `json:"compactionThreshold"`

	// Configures where segment files live beneath DataDir.
	SegmentOptions *segmentOptions `json:"segmentOptions"`
}

// OptionFunc is a function type that modifies the Ignite system's configuration.
type OptionFunc func(*Options)

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.SegmentOptions = opts.SegmentOptions
		o.CompactInterval = opts.CompactInterval
		o.CompactionThreshold = opts.CompactionThreshold
	}
}

// Sets the primary data directory for Ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// Sets CompactInterval; non-positive intervals are ignored. Compaction
// scheduling does not depend on this value.
func WithCompactInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.CompactInterval = interval
		}
	}
}

// Sets the directory specifically for storing segment files.
func WithSegmentDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.SegmentOptions.Directory = directory
		}
	}
}

// Sets the number of stale bytes tolerated across all segment files before
// a write triggers compaction.
func WithCompactionThreshold(bytes uint64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.CompactionThreshold = bytes
		}
	}
}
