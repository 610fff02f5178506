package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"auth", AuthRequired("no session"), KindAuthRequired},
		{"forbidden", Forbidden("not yours"), KindForbidden},
		{"admin is forbidden", AdminRequired(), KindForbidden},
		{"not found", NotFound("chat not found"), KindNotFound},
		{"conflict", Conflict("email taken"), KindConflict},
		{"validation", Validation("bad input", nil), KindValidation},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("x")), KindNotFound},
		{"untyped", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsMatchesKindAndCode(t *testing.T) {
	assert.ErrorIs(t, AdminRequired(), ErrAdminRequired)
	assert.NotErrorIs(t, AdminRequired(), ErrForbidden)
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", NotFound("chat")), ErrNotFound)
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := Internal("failed to load", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, KindInternal, As(cause).Kind)
}
