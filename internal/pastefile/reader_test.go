package pastefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_SkipsBlankLines(t *testing.T) {
	src := "\uFEFFGucci Bag (LG25) 350\r\n\r\n   \nPrada Wallet 120\n\n"

	r := NewReader(strings.NewReader(src))
	defer r.Close()

	var lines []string
	var numbers []int
	for r.Next() {
		lines = append(lines, r.Line())
		numbers = append(numbers, r.LineNumber())
	}
	require.NoError(t, r.Err())

	assert.Equal(t, []string{"Gucci Bag (LG25) 350", "Prada Wallet 120"}, lines)
	assert.Equal(t, []int{1, 4}, numbers)
	assert.False(t, r.Next(), "stays exhausted")
	assert.Empty(t, r.Line())
}

func TestReader_LineTooLong(t *testing.T) {
	r := NewReader(strings.NewReader(strings.Repeat("x", MaxLineLength+1)))
	assert.False(t, r.Next())
	assert.ErrorContains(t, r.Err(), "line 1")
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paste.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	require.True(t, r.Next())
	assert.Equal(t, "one", r.Line())
	require.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestNewReader_Empty(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	assert.False(t, r.Next())
	require.NoError(t, r.Err())
	assert.Zero(t, r.LineNumber())
	assert.NoError(t, r.Close())
}
