package config

import "time"

const (
	// MaxUploadBytes is the raw-size ceiling for one uploaded file,
	// enforced before any decoding happens.
	MaxUploadBytes = 20 << 20 // 20 MiB

	// MaxNormalizedBytes is the ceiling on a document's content after the
	// upload has been decoded and re-encoded to UTF-8. Legacy encodings
	// can expand past the raw ceiling, hence the second check.
	MaxNormalizedBytes = 30 << 20 // 30 MiB

	// SaveDebounce is the quiet interval before a burst of content edits
	// is flushed to the store as a single write.
	SaveDebounce = 500 * time.Millisecond

	// MaxDocumentNameLength is the maximum length for document names.
	// Names should be short and descriptive.
	MaxDocumentNameLength = 255

	// MaxTitleLength is the maximum length for prompt and work-item
	// titles. Same cap as document names for consistency.
	MaxTitleLength = 255
)
