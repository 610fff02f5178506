package tracer

import (
	"context"
	"testing"

	"ai-tutor-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabledByDefault(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")

	shutdown := InitTracer(logger.NewNop())
	assert.NoError(t, shutdown(context.Background()))
}
