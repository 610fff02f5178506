package mailer

import (
	"testing"

	"ai-tutor-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestEmptyHostIsNoop(t *testing.T) {
	svc := NewEmailService("", 587, "", "", "AI Tutor", logger.NewNop())
	assert.IsType(t, noopEmailService{}, svc)
	assert.NoError(t, svc.SendWelcome("a@b.c", "A"))
}

func TestWelcomeBodyEscapesName(t *testing.T) {
	body := welcomeBody("<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
}
