package chat

import "strings"

const (
	WelcomeID          = "welcome"
	WelcomeText        = "Xin chào! hMADE xin vui lòng được hỗ trợ bạn. Bạn cần tư vấn gì hôm nay?"
	DefaultErrorText   = "Đã xảy ra lỗi, vui lòng thử lại."
	DefaultHistorySize = 20
)

type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Streaming bool   `json:"is_streaming,omitempty"`
}

func welcome() Message {
	return Message{ID: WelcomeID, Role: RoleAssistant, Content: WelcomeText}
}

// Conversation is the message list of one chat widget. At most one
// assistant message streams at a time; botID names it.
type Conversation struct {
	messages []Message
	botID    string
}

func NewConversation() *Conversation {
	return &Conversation{messages: []Message{welcome()}}
}

func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// Busy reports whether an assistant reply is still streaming.
func (c *Conversation) Busy() bool {
	return c.botID != ""
}

// History returns the last limit messages as turns, welcome excluded.
func (c *Conversation) History(limit int) []Turn {
	turns := make([]Turn, 0, len(c.messages))
	for _, m := range c.messages {
		if m.ID == WelcomeID {
			continue
		}
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}
	if limit <= 0 {
		return []Turn{}
	}
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}

// BeginTurn appends the user's message and an empty streaming reply.
func (c *Conversation) BeginTurn(userID, botID, text string) {
	c.messages = append(c.messages,
		Message{ID: userID, Role: RoleUser, Content: text},
		Message{ID: botID, Role: RoleAssistant, Streaming: true},
	)
	c.botID = botID
}

// Apply folds one server frame into the conversation and reports whether
// anything visible changed. A chunk with no streaming reply is dropped.
func (c *Conversation) Apply(f Frame) bool {
	switch f.Type {
	case FrameChunk:
		m := c.streaming()
		if m == nil {
			return false
		}
		m.Content += f.Content
		return true

	case FrameDone:
		if m := c.streaming(); m != nil {
			m.Streaming = false
		}
		changed := c.botID != ""
		c.botID = ""
		return changed

	case FrameError:
		if m := c.streaming(); m != nil {
			m.Content = f.Content
			if strings.TrimSpace(m.Content) == "" {
				m.Content = DefaultErrorText
			}
			m.Streaming = false
		}
		changed := c.botID != ""
		c.botID = ""
		return changed
	}
	return false
}

// Clear resets to the welcome message regardless of connection state.
func (c *Conversation) Clear() {
	c.messages = []Message{welcome()}
	c.botID = ""
}

func (c *Conversation) streaming() *Message {
	if c.botID == "" {
		return nil
	}
	for i := range c.messages {
		if c.messages[i].ID == c.botID {
			return &c.messages[i]
		}
	}
	return nil
}
