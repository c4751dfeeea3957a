package loqui

import "github.com/loqui/loqui-go/internal/types"

// Public type aliases so SDK consumers can import only the loqui package.
type (
	// Domain entities
	User           = types.User
	Category       = types.Category
	Tag            = types.Tag
	Thread         = types.Thread
	Message        = types.Message
	Comment        = types.Comment
	PrivateMessage = types.PrivateMessage
	Attachment     = types.Attachment

	// Requests
	CreateThreadRequest       = types.CreateThreadRequest
	PostMessageRequest        = types.PostMessageRequest
	SendPrivateMessageRequest = types.SendPrivateMessageRequest
)

// UnknownUserName is the display name of the sentinel identity that stands
// in for creators the server could not or did not populate.
const UnknownUserName = types.UnknownUserName

// UnknownUser returns a fresh copy of the sentinel identity.
func UnknownUser() *User { return types.UnknownUser() }
