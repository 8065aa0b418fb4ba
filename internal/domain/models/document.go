package models

// ContentBlock is the common shape shared by chapters and work items.
type ContentBlock struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Chapter is a titled, contiguous span of a document's text. Ids are
// stringified 1-based sequence numbers assigned in match order; id "0" is
// reserved for a prologue inserted before the first detected heading.
type Chapter ContentBlock

// PrologueChapterID is the sentinel id for content preceding the first
// detected heading. It sits outside the normal 1..N sequence.
const PrologueChapterID = "0"

type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPublished DocumentStatus = "published"
)

// Document is a user-uploaded or authored text unit. Content holds the
// flattened plain text; Chapters are populated lazily on first open and
// persisted so parsing never happens twice.
type Document struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Content          string         `json:"content"`
	Size             int64          `json:"size"`         // UTF-8 normalized byte length
	OriginalSize     int64          `json:"originalSize"` // raw byte length before decoding
	UploadTime       string         `json:"uploadTime"`   // display string
	CreatedAt        int64          `json:"createdAt"`    // epoch millis
	UpdatedAt        int64          `json:"updatedAt"`    // epoch millis
	Status           DocumentStatus `json:"status"`
	Tags             []string       `json:"tags,omitempty"`
	Chapters         []Chapter      `json:"chapters,omitempty"`
	CurrentChapterID string         `json:"currentChapterId,omitempty"`
}
