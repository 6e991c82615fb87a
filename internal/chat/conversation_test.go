package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_Streaming(t *testing.T) {
	c := NewConversation()
	require.Len(t, c.Messages(), 1)
	assert.Equal(t, WelcomeID, c.Messages()[0].ID)

	c.BeginTurn("user-1", "bot-1", "Áo size M còn không?")
	assert.True(t, c.Busy())

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, Message{ID: "user-1", Role: RoleUser, Content: "Áo size M còn không?"}, msgs[1])
	assert.Equal(t, Message{ID: "bot-1", Role: RoleAssistant, Streaming: true}, msgs[2])

	assert.True(t, c.Apply(Frame{Type: FrameChunk, Content: "Còn "}))
	assert.True(t, c.Apply(Frame{Type: FrameChunk, Content: "ạ"}))
	assert.True(t, c.Apply(Frame{Type: FrameDone}))

	last := c.Messages()[2]
	assert.Equal(t, "Còn ạ", last.Content)
	assert.False(t, last.Streaming)
	assert.False(t, c.Busy())
}

func TestConversation_ChunkWithoutReply(t *testing.T) {
	c := NewConversation()

	assert.False(t, c.Apply(Frame{Type: FrameChunk, Content: "orphan"}))
	assert.False(t, c.Apply(Frame{Type: FrameDone}))
	assert.False(t, c.Apply(Frame{Type: "typing"}))
	assert.Equal(t, []Message{welcome()}, c.Messages())
}

func TestConversation_Error(t *testing.T) {
	t.Run("Default text", func(t *testing.T) {
		c := NewConversation()
		c.BeginTurn("u", "b", "hi")
		c.Apply(Frame{Type: FrameChunk, Content: "partial"})

		assert.True(t, c.Apply(Frame{Type: FrameError}))
		last := c.Messages()[2]
		assert.Equal(t, DefaultErrorText, last.Content)
		assert.False(t, last.Streaming)
		assert.False(t, c.Busy())
	})

	t.Run("Server text", func(t *testing.T) {
		c := NewConversation()
		c.BeginTurn("u", "b", "hi")
		c.Apply(Frame{Type: FrameError, Content: "quota exceeded"})
		assert.Equal(t, "quota exceeded", c.Messages()[2].Content)
	})
}

func TestConversation_History(t *testing.T) {
	c := NewConversation()
	assert.Empty(t, c.History(20))

	c.BeginTurn("u1", "b1", "one")
	c.Apply(Frame{Type: FrameChunk, Content: "1"})
	c.Apply(Frame{Type: FrameDone})
	c.BeginTurn("u2", "b2", "two")
	c.Apply(Frame{Type: FrameDone})

	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "1"},
		{Role: RoleUser, Content: "two"},
		{Role: RoleAssistant, Content: ""},
	}, c.History(20))

	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "two"},
		{Role: RoleAssistant, Content: ""},
	}, c.History(2))

	assert.Empty(t, c.History(0))
}

func TestConversation_Clear(t *testing.T) {
	c := NewConversation()
	c.BeginTurn("u", "b", "hi")

	c.Clear()
	assert.Equal(t, []Message{welcome()}, c.Messages())
	assert.False(t, c.Busy())
}
