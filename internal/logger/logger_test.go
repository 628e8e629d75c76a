package logger

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesAreSharedWithChildren(t *testing.T) {
	l := Nop()
	child := l.With("component", "console")
	l.Log("cmd thickness 1.5")
	child.Log("thickness set to 1.50")

	assert.Equal(t, []string{"cmd thickness 1.5", "thickness set to 1.50"}, l.Lines())
	assert.Equal(t, l.Lines(), child.Lines())
}

func TestLinesReturnsCopy(t *testing.T) {
	l := Nop()
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.Equal(t, "a", l.Lines()[0])
}

func TestLinesCapped(t *testing.T) {
	l := Nop()
	for i := 0; i < maxLines+25; i++ {
		l.Log(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.Equal(t, "line 25", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", maxLines+24), lines[len(lines)-1])
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "keychain.log")
	l, err := New("dev", path)
	require.NoError(t, err)
	l.Info("ready", "path", path)
	l.Sync()
	assert.FileExists(t, path)
}
