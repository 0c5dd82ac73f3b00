package reqlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetError(t *testing.T) {
	ctx, entry := NewContext(context.Background())

	kind, err := entry.Error()
	assert.Empty(t, kind)
	assert.NoError(t, err)

	cause := errors.New("boom")
	SetError(ctx, "invalid_city", cause)

	kind, err = entry.Error()
	assert.Equal(t, "invalid_city", kind)
	assert.Same(t, cause, err)
}

func TestSetErrorWithoutEntry(t *testing.T) {
	assert.NotPanics(t, func() {
		SetError(context.Background(), "internal", errors.New("boom"))
	})
}
