package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
)

type memFile struct {
	name string
	data string
	err  error
}

func (m memFile) Name() string { return m.name }

func (m memFile) Open() (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(strings.NewReader(m.data)), nil
}

func newBatch(t *testing.T, sku string, files ...memFile) sequencer.Batch {
	t.Helper()
	handles := make([]sequencer.FileHandle, len(files))
	for i, f := range files {
		handles[i] = f
	}
	b, err := sequencer.NewBatch(sku, handles, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return b
}

// readZip returns entry name -> content.
func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = string(b)
	}
	return out
}

func TestBuildBatch(t *testing.T) {
	b := newBatch(t, "LG-25",
		memFile{name: "front.png", data: "F"},
		memFile{name: "back", data: "B"},
	)

	data, err := BuildBatch(b)
	require.NoError(t, err)

	entries := readZip(t, data)
	assert.Equal(t, map[string]string{
		"LG-25 1.png": "F",
		"LG-25 2.jpg": "B",
	}, entries)
	assert.Equal(t, "LUSH_LG-25.zip", BatchFileName(b))
}

func TestBuildBatch_SourceError(t *testing.T) {
	b := newBatch(t, "LG-25", memFile{name: "x.png", err: errors.New("gone")})

	_, err := BuildBatch(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone")
}

func TestBuildMaster(t *testing.T) {
	a := newBatch(t, "LG-25", memFile{name: "a.png", data: "A"})
	b := newBatch(t, "LG-26", memFile{name: "b.jpeg", data: "B"}, memFile{name: "c.jpeg", data: "C"})

	data, err := BuildMaster([]sequencer.Batch{b, a})
	require.NoError(t, err)

	entries := readZip(t, data)
	assert.Equal(t, map[string]string{
		"LG-26/":             "",
		"LG-26/LG-26 1.jpeg": "B",
		"LG-26/LG-26 2.jpeg": "C",
		"LG-25/":             "",
		"LG-25/LG-25 1.png":  "A",
	}, entries)
}

func TestBuildMaster_Empty(t *testing.T) {
	data, err := BuildMaster(nil)
	require.ErrorIs(t, err, ErrNoBatches)
	assert.Nil(t, data)
}

func TestMasterFileName(t *testing.T) {
	assert.Equal(t, "LUSH_ARCHIVE_MASTER_1718000000123.zip", MasterFileName(time.UnixMilli(1718000000123)))
}
