package outliner

import "github.com/docsift/outliner/layout"

// Options holds configuration for outline extraction.
type Options struct {
	// useBookmarks enables the embedded-bookmark fast path.
	useBookmarks bool

	// forcedArchetype overrides document-type detection when non-nil.
	forcedArchetype *layout.Archetype
}

// defaultOptions returns the default extraction options.
func defaultOptions() Options {
	return Options{
		useBookmarks:    true,
		forcedArchetype: nil,
	}
}
