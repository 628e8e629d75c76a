package resource

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesAndIdentifies(t *testing.T) {
	data := []byte{1, 2, 3}
	a := New("a.png", data)
	b := New("a.png", data)
	data[0] = 9

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, Same(a, b))
	assert.True(t, Same(a, a))

	got, err := io.ReadAll(a.Open())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, "a.png", a.Name())
}

func TestNilHandle(t *testing.T) {
	var im *Image
	assert.Equal(t, uuid.Nil, im.ID())
	assert.Equal(t, "", im.Name())
	assert.Equal(t, 0, im.Size())
	assert.True(t, Same(nil, im))
	got, err := io.ReadAll(im.Open())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
	im, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", im.Name())

	_, err = FromFile(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
