package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/lush-listing-kit/internal/config"
	"github.com/ginjaninja78/lush-listing-kit/internal/export"
	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
)

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	return names
}

func TestRunProcess(t *testing.T) {
	fm := testFileManager(t)
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "a.txt"),
		[]byte("Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "b.txt"), []byte("\n\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "c.txt"), []byte("Prada Wallet 120\nHermes Scarf (H1) 80\n"), 0o644))

	cfg := config.Default()
	cfg.MaxConcurrency = 2
	dryRun = false
	processPattern = "*.txt"

	var out bytes.Buffer
	summary, err := runProcess(context.Background(), &out, cfg, fm, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 2, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, filepath.Join(fm.InputDir, "b.txt"), summary.FailedFilesList[0].InputFile)

	assert.FileExists(t, filepath.Join(fm.InputArchiveDir, "a.txt"))
	assert.FileExists(t, filepath.Join(fm.InputArchiveDir, "c.txt"))
	assert.FileExists(t, filepath.Join(fm.InputDir, "b.txt"), "failed input stays")

	exports, err := filepath.Glob(filepath.Join(fm.OutputDir, "LUSH_MASTER_*.csv"))
	require.NoError(t, err)
	assert.Len(t, exports, 2)
	summaries, err := filepath.Glob(filepath.Join(fm.OutputDir, "summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	assert.Contains(t, out.String(), "✓ a.txt")
	assert.Contains(t, out.String(), "✗ b.txt")
}

func TestRunProcess_DryRun(t *testing.T) {
	fm := testFileManager(t)
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "a.txt"), []byte("Item 5\n"), 0o644))

	dryRun = true
	t.Cleanup(func() { dryRun = false })
	processPattern = "*.txt"

	var out bytes.Buffer
	summary, err := runProcess(context.Background(), &out, config.Default(), fm, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessfulFiles)

	entries, err := os.ReadDir(fm.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, filepath.Join(fm.InputDir, "a.txt"))
	assert.Contains(t, out.String(), "(dry run)")
}

func TestRunProcess_NoFiles(t *testing.T) {
	fm := testFileManager(t)
	processPattern = "*.txt"

	var out bytes.Buffer
	summary, err := runProcess(context.Background(), &out, config.Default(), fm, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Zero(t, summary.TotalFiles)
	assert.Contains(t, out.String(), "No paste files found")
}

func TestRunRename(t *testing.T) {
	fm := testFileManager(t)
	photos := photoDir(t, "b.png", "a.png")
	loose := filepath.Join(t.TempDir(), "extra")
	require.NoError(t, os.WriteFile(loose, pngHeader, 0o644))

	var out bytes.Buffer
	path, err := runRename(&out, fm, " LG-25 ", []string{photos, loose}, true, time.Now())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fm.OutputDir, "LUSH_LG-25.zip"), path)
	assert.ElementsMatch(t, []string{"LG-25 1.png", "LG-25 2.png", "LG-25 3.jpg"}, zipNames(t, path))
	assert.FileExists(t, filepath.Join(photos, "a.png"), "sources untouched")
}

func TestRunRename_Preconditions(t *testing.T) {
	fm := testFileManager(t)
	photos := photoDir(t, "a.png")
	empty := t.TempDir()

	_, err := runRename(&bytes.Buffer{}, fm, "", []string{photos}, true, time.Now())
	assert.ErrorIs(t, err, sequencer.ErrEmptyIdentifier)

	_, err = runRename(&bytes.Buffer{}, fm, "LG-1", []string{empty}, true, time.Now())
	assert.ErrorIs(t, err, sequencer.ErrNoFiles)

	_, err = runRename(&bytes.Buffer{}, fm, "LG/25", []string{photos}, true, time.Now())
	assert.ErrorIs(t, err, sequencer.ErrIdentifierPath)

	path, err := runRename(&bytes.Buffer{}, fm, "LG-1", []string{photos}, false, time.Now())
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(fm.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunArchive(t *testing.T) {
	fm := testFileManager(t)
	base := t.TempDir()
	for _, p := range []string{"lg25/front.png", "lg25/back.png", "lg26/only.png"} {
		full := filepath.Join(base, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, pngHeader, 0o644))
	}

	m := &config.Manifest{Batches: []config.ManifestBatch{
		{SKU: "LG-25", Files: []string{"lg25/front.png", "lg25/back.png"}},
		{SKU: "LG-26", Files: []string{"lg26"}},
	}}

	var out bytes.Buffer
	path, err := runArchive(&out, fm, m, base, time.UnixMilli(fixedMillis))
	require.NoError(t, err)

	assert.Equal(t, "LUSH_ARCHIVE_MASTER_1718000000000.zip", filepath.Base(path))
	assert.ElementsMatch(t, []string{
		"LG-26/", "LG-26/LG-26 1.png",
		"LG-25/", "LG-25/LG-25 1.png", "LG-25/LG-25 2.png",
	}, zipNames(t, path))
	assert.Contains(t, out.String(), "Saved 2 batch(es)")
}

func TestRunArchive_RejectsPathSKU(t *testing.T) {
	fm := testFileManager(t)
	base := photoDir(t, "a.png")

	m := &config.Manifest{Batches: []config.ManifestBatch{{SKU: "LG/25", Files: []string{"a.png"}}}}
	_, err := runArchive(&bytes.Buffer{}, fm, m, base, time.UnixMilli(fixedMillis))
	assert.ErrorIs(t, err, sequencer.ErrIdentifierPath)

	entries, err := os.ReadDir(fm.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunExport(t *testing.T) {
	fm := testFileManager(t)
	paste := filepath.Join(fm.InputDir, "monday.txt")
	require.NoError(t, os.WriteFile(paste,
		[]byte("Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123\nPlain Item\n"), 0o644))

	var out bytes.Buffer
	res, err := runExport(context.Background(), &out, config.Default(), fm, logger.NewNop(), paste, export.FormatCSV)
	require.NoError(t, err)

	assert.FileExists(t, res.OutputFile)
	assert.FileExists(t, paste, "export leaves the paste file")
	text := out.String()
	assert.Contains(t, text, "3 warning(s):")
	assert.Contains(t, text, "1. [WARNING] line 2, field 'links': no photo link found")
	assert.Contains(t, text, "Exported 2 listing(s) to "+res.OutputFile)
}

func TestRunExport_ChecksOff(t *testing.T) {
	fm := testFileManager(t)
	paste := filepath.Join(fm.InputDir, "monday.txt")
	require.NoError(t, os.WriteFile(paste,
		[]byte("Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123\n"), 0o644))

	cfg := config.Default()
	cfg.CheckCost = false

	var out bytes.Buffer
	res, err := runExport(context.Background(), &out, cfg, fm, logger.NewNop(), paste, export.FormatXLSX)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, ".xlsx", filepath.Ext(res.OutputFile))
	assert.Contains(t, out.String(), "No warnings.\n")
}

func TestRunExport_MissingFile(t *testing.T) {
	fm := testFileManager(t)
	_, err := runExport(context.Background(), &bytes.Buffer{}, config.Default(), fm, logger.NewNop(),
		filepath.Join(fm.InputDir, "nope.txt"), export.FormatCSV)
	assert.Error(t, err)
}

func TestRootCommand_ParseAndVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"parse", "--output", "yaml", "Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123"})
	require.NoError(t, rootCmd.Execute())
	text := out.String()
	assert.Contains(t, text, "title: Gucci Bag (LG25)")
	assert.Contains(t, text, "sku: LG25")
	assert.Contains(t, text, `cost: "350"`)
	assert.Contains(t, text, "https://drive.google.com/uc?export=view&id=ABC123")

	out.Reset()
	rootCmd.SetArgs([]string{"parse", "--output", "table", "Plain", "Item"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Plain Item")
	assert.Contains(t, out.String(), "no photo link found")

	out.Reset()
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "lush listing toolkit"))
}
