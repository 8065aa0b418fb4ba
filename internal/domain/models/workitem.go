package models

// WorkItemType discriminates the three work-item collections. The variants
// share one shape and one set of operations; only the collection differs.
type WorkItemType string

const (
	WorkItemSetting   WorkItemType = "setting"
	WorkItemCharacter WorkItemType = "character"
	WorkItemKnowledge WorkItemType = "knowledge"
)

// Valid reports whether t names a known work-item collection.
func (t WorkItemType) Valid() bool {
	switch t {
	case WorkItemSetting, WorkItemCharacter, WorkItemKnowledge:
		return true
	}
	return false
}

// DefaultTitle is the display title backfilled for records written under an
// older shape that lacks one.
func (t WorkItemType) DefaultTitle() string {
	switch t {
	case WorkItemCharacter:
		return "未命名角色"
	case WorkItemKnowledge:
		return "未命名知识"
	default:
		return "未命名设定"
	}
}

// WorkItem is a document-scoped auxiliary note (setting, character or
// knowledge entry). DocumentID must reference a live document at creation;
// deleting the document does not cascade here.
type WorkItem struct {
	ID         string       `json:"id"`
	DocumentID string       `json:"documentId"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Type       WorkItemType `json:"type"`
	CreatedAt  int64        `json:"createdAt"`
	UpdatedAt  int64        `json:"updatedAt"`
}
