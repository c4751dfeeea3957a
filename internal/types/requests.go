package types

// ------------------------------
// Request payloads
// ------------------------------

// CreateThreadRequest is the payload for POST threads.
type CreateThreadRequest struct {
	Title      string   `json:"title"`
	CategoryID string   `json:"categoryId"`
	Tags       []string `json:"tags,omitempty"`
	Content    string   `json:"content"`
}

// PostMessageRequest is the payload for POST threads/{id}/messages.
type PostMessageRequest struct {
	Content       string   `json:"content"`
	AttachmentIDs []string `json:"attachmentIds,omitempty"`
}

// SendPrivateMessageRequest is the payload for POST private-messages.
// Exactly one of ToID and ToName must be set; the server resolves names.
type SendPrivateMessageRequest struct {
	ToID    string `json:"toId,omitempty"`
	ToName  string `json:"toName,omitempty"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}
