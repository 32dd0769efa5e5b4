// =============================================================================
// Listing Toolkit - Archive Packaging
// =============================================================================
//
// This module packs renamed photo batches into zip files ready to upload.
//
// LAYOUTS:
//   Single batch:  LUSH_<sku>.zip
//     ├── LG-25 1.png
//     └── LG-25 2.jpg
//
//   All batches:   LUSH_ARCHIVE_MASTER_<millis>.zip
//     ├── LG-25/
//     │   ├── LG-25 1.png
//     │   └── LG-25 2.jpg
//     └── LG-26/
//         └── LG-26 1.jpg
//
// The packagers only read the source files; they never rename anything on
// disk. Saving the returned bytes is the caller's job.
//
// =============================================================================

package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
)

// MediaType is the media-type hint passed to the save collaborator.
const MediaType = "application/zip"

// ErrNoBatches is returned when a master archive is requested with no batches.
var ErrNoBatches = errors.New("archive is empty: lock at least one batch first")

// =============================================================================
// FILE NAMING
// =============================================================================

// BatchFileName returns the zip name for a single batch.
func BatchFileName(b sequencer.Batch) string {
	return fmt.Sprintf("LUSH_%s.zip", b.Identifier)
}

// MasterFileName returns the zip name for the combined archive.
func MasterFileName(now time.Time) string {
	return fmt.Sprintf("LUSH_ARCHIVE_MASTER_%d.zip", now.UnixMilli())
}

// =============================================================================
// PACKAGING
// =============================================================================

// BuildBatch packs one batch with its files at the archive root.
//
// RETURNS:
//   - The zip bytes.
//   - An error if a source file cannot be read.
func BuildBatch(b sequencer.Batch) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addBatch(zw, "", b); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish zip: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildMaster packs every batch into one archive, one folder per identifier.
// Batches sharing an identifier share a folder.
//
// RETURNS:
//   - The zip bytes.
//   - ErrNoBatches if batches is empty.
func BuildMaster(batches []sequencer.Batch) ([]byte, error) {
	if len(batches) == 0 {
		return nil, ErrNoBatches
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]bool)
	for _, b := range batches {
		if !seen[b.Identifier] {
			if _, err := zw.Create(b.Identifier + "/"); err != nil {
				zw.Close()
				return nil, fmt.Errorf("failed to create folder %s: %w", b.Identifier, err)
			}
			seen[b.Identifier] = true
		}
		if err := addBatch(zw, b.Identifier, b); err != nil {
			zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish zip: %w", err)
	}
	return buf.Bytes(), nil
}

// addBatch copies every file of the batch under folder ("" for the root).
func addBatch(zw *zip.Writer, folder string, b sequencer.Batch) error {
	for _, f := range b.Files {
		name := f.Name
		if folder != "" {
			name = path.Join(folder, f.Name)
		}
		if err := addFile(zw, name, f.Source, b.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// addFile writes one entry.
func addFile(zw *zip.Writer, name string, src sequencer.FileHandle, modified time.Time) error {
	rc, err := src.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src.Name(), err)
	}
	return nil
}
