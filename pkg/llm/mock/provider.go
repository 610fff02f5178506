// Package mock is a deterministic LLM backend for development and tests.
package mock

import (
	"context"
	"fmt"
	"strings"

	"ai-tutor-be/pkg/llm"
)

type Provider struct{}

var _ llm.LLMProvider = Provider{}

func NewProvider() Provider {
	return Provider{}
}

func (Provider) Name() string {
	return "mock"
}

// Chat echoes the last user message, in Bengali when the system prompt asks for it.
func (Provider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	bangla := false
	question := ""
	for _, m := range history {
		switch m.Role {
		case llm.RoleSystem:
			if strings.Contains(m.Content, "Bengali") {
				bangla = true
			}
		case llm.RoleUser:
			question = m.Content
		}
	}
	if question == "" {
		return "", llm.ErrEmptyReply
	}

	if bangla {
		return fmt.Sprintf("আপনি জিজ্ঞাসা করেছেন: %q। চলুন ধাপে ধাপে বিষয়টি বুঝি।", question), nil
	}
	return fmt.Sprintf("You asked: %q. Let's work through it step by step.", question), nil
}
