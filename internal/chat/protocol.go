package chat

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one history entry sent along with a new message.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Outbound is what the chat backend expects per user message.
type Outbound struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

type FrameType string

const (
	FrameChunk FrameType = "chunk"
	FrameDone  FrameType = "done"
	FrameError FrameType = "error"
)

// Frame is one server message of the streamed reply.
type Frame struct {
	Type    FrameType `json:"type"`
	Content string    `json:"content,omitempty"`
}
