package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientID(t *testing.T) {
	want := uuid.New()
	got, err := ParseClientID(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, raw := range []string{"", "client-1", uuid.Nil.String()} {
		_, err := ParseClientID(raw)
		assert.ErrorIs(t, err, ErrInvalidClientID, raw)
	}
}

func TestLimit(t *testing.T) {
	assert.Equal(t, 50, Limit(0, 50))
	assert.Equal(t, 50, Limit(-1, 50))
	assert.Equal(t, 50, Limit(100, 50))
	assert.Equal(t, 10, Limit(10, 50))
}
