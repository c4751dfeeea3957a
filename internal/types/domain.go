package types

import (
	"time"

	"github.com/google/uuid"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// User identifies a forum account. The server may embed the full record on
// any entity, reference it by name only, or omit it entirely; the hydrate
// and identity packages are responsible for closing those gaps.
type User struct {
	ID        string    `json:"userId"`
	Name      string    `json:"name"`
	Signature string    `json:"signature,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnknownUserName is the display name of the sentinel identity.
const UnknownUserName = "Unknown"

// UnknownUserID is the fixed id of the sentinel identity (the all-zero UUID).
var UnknownUserID = uuid.Nil.String()

// UnknownUser returns a fresh sentinel identity that stands in for any
// creator reference the server could not or did not populate.
func UnknownUser() *User {
	return &User{ID: UnknownUserID, Name: UnknownUserName}
}

// IsUnknown reports whether u is the sentinel identity.
func (u *User) IsUnknown() bool {
	return u != nil && u.ID == UnknownUserID
}

// Category is a node in the forum's category tree. Tags form a many-to-many
// relation with categories.
type Category struct {
	ID          string      `json:"categoryId"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parent      *Category   `json:"parent,omitempty"`
	Children    []*Category `json:"children"`
	Tags        []*Tag      `json:"tags"`
	ThreadCount int         `json:"threadCount"`
	CreatedBy   *User       `json:"createdBy,omitempty"`
}

// Tag labels threads and is attached to one or more categories.
type Tag struct {
	ID         string      `json:"tagId"`
	Name       string      `json:"name"`
	Color      string      `json:"color,omitempty"`
	Categories []*Category `json:"categories"`
	CreatedBy  *User       `json:"createdBy,omitempty"`
}

// Thread is a categorized, tagged discussion. LatestMessage is a summary of
// the most recent message and may be omitted by the server.
type Thread struct {
	ID            string      `json:"threadId"`
	Title         string      `json:"title"`
	Pinned        bool        `json:"pinned"`
	Locked        bool        `json:"locked"`
	MessageCount  int         `json:"messageCount"`
	Categories    []*Category `json:"categories"`
	Tags          []*Tag      `json:"tags"`
	LatestMessage *Message    `json:"latestMessage"`
	CreatedBy     *User       `json:"createdBy,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Message belongs to a thread. The thread back-reference is only populated
// on endpoints that return messages detached from their thread.
type Message struct {
	ID          string        `json:"messageId"`
	Content     string        `json:"content"`
	Approved    bool          `json:"approved"`
	CreatedAt   time.Time     `json:"createdAt"`
	EditedAt    *time.Time    `json:"editedAt,omitempty"`
	Thread      *Thread       `json:"thread,omitempty"`
	Attachments []*Attachment `json:"attachments"`
	Comments    []*Comment    `json:"comments"`
	CreatedBy   *User         `json:"createdBy,omitempty"`
}

// Comment is a lightweight reply attached to a single message.
type Comment struct {
	ID        string    `json:"commentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Message   *Message  `json:"message,omitempty"`
	CreatedBy *User     `json:"createdBy,omitempty"`
}

// PrivateMessage is direct mail between two users.
type PrivateMessage struct {
	ID          string        `json:"privateMessageId"`
	Subject     string        `json:"subject"`
	Content     string        `json:"content"`
	Read        bool          `json:"read"`
	CreatedAt   time.Time     `json:"createdAt"`
	Attachments []*Attachment `json:"attachments"`
	From        *User         `json:"from,omitempty"`
	To          *User         `json:"to,omitempty"`
}

// Attachment is an uploaded file linked to a message or private message.
type Attachment struct {
	ID        string    `json:"attachmentId"`
	FileName  string    `json:"fileName"`
	MediaType string    `json:"mediaType,omitempty"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *User     `json:"createdBy,omitempty"`
}
