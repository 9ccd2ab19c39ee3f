package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trash/internal/core/apperror"
)

func TestNew_IsVersion7(t *testing.T) {
	a := New()
	b := New()

	assert.Equal(t, 7, int(a.Version()))
	assert.NotEqual(t, a, b)
	assert.False(t, IsNil(a))
}

func TestParse(t *testing.T) {
	want := New()

	got, err := Parse(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Parse("not-a-uuid")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}
