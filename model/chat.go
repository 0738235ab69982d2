package model

// MessageRole represents the role of a chat message sender
type MessageRole string

const (
	MessageRoleUser  MessageRole = "user"
	MessageRoleModel MessageRole = "model"
)

// ChatMessage is a single turn in a tutoring conversation. Messages are
// immutable once appended; insertion order is display order.
type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp int64       `json:"timestamp"` // unix milliseconds
}

// ForumPost is a community post with on-demand cached translations
type ForumPost struct {
	ID           string              `json:"id"`
	Author       string              `json:"author"`
	Content      string              `json:"content"`
	Language     Language            `json:"language"`
	Timestamp    int64               `json:"timestamp"`
	Translations map[Language]string `json:"translations,omitempty"`
}
