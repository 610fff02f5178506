package mock

import (
	"context"
	"testing"

	"ai-tutor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatIsDeterministic(t *testing.T) {
	history := []llm.Message{{Role: llm.RoleUser, Content: "What is 2+2?"}}

	a, err := NewProvider().Chat(context.Background(), history)
	require.NoError(t, err)
	b, err := NewProvider().Chat(context.Background(), history)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Contains(t, a, "What is 2+2?")
}

func TestChatFollowsLanguage(t *testing.T) {
	reply, err := NewProvider().Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "Reply in Bengali."},
		{Role: llm.RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "আপনি")
}

func TestChatNeedsAQuestion(t *testing.T) {
	_, err := NewProvider().Chat(context.Background(), nil)
	assert.ErrorIs(t, err, llm.ErrEmptyReply)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewProvider().Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.Error(t, err)
}
