package terrain

import "errors"

// Configuration errors. Settings.Validate and NewLibrary wrap these.
var (
	ErrNoResolutions       = errors.New("no resolution tiers configured")
	ErrInvalidResolution   = errors.New("resolution tier must be at least 2")
	ErrUnsortedResolutions = errors.New("resolution tiers must be strictly ascending")
	ErrInvalidPrecision    = errors.New("precision must be positive")
	ErrInvalidSize         = errors.New("terrain size must be positive")
	ErrInvalidDepth        = errors.New("max depth out of range")
	ErrInvalidCapacity     = errors.New("instance capacity must be positive")
)
