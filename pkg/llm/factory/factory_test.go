package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"ollama", "ollama"},
		{"Ollama", "ollama"},
		{"mock", "mock"},
		{"", "mock"},
	}
	for _, tt := range tests {
		p, err := NewLLMProvider(tt.provider, "llama3", "", time.Second)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Name())
	}

	_, err := NewLLMProvider("gemini", "", "", time.Second)
	assert.Error(t, err)
}
