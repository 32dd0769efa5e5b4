// =============================================================================
// Listing Toolkit - File Manager Utility
// =============================================================================
//
// This module owns every touch of the local disk outside the paste reader:
//   - Saving generated artifacts (exports, zips) into the output directory
//   - Finding paste files and images to work on
//   - Moving processed paste files into the input archive
//
// SAVE STRATEGY:
//   Artifacts are written to a temp file in the output directory and renamed
//   into place, so a crash never leaves a half-written upload file behind.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
)

// Saver persists a generated payload under a file name and returns where it
// went. mediaType is a hint; implementations may ignore it.
type Saver interface {
	Save(payload []byte, name, mediaType string) (string, error)
}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the toolkit.
type FileManager struct {
	// InputDir is where `process` looks for paste files.
	InputDir string

	// OutputDir receives every saved artifact.
	OutputDir string

	// InputArchiveDir receives paste files after processing.
	InputArchiveDir string

	log logger.Logger
}

// NewFileManager creates a FileManager. A nil log discards messages.
func NewFileManager(inputDir, outputDir, inputArchiveDir string, log logger.Logger) *FileManager {
	if log == nil {
		log = logger.NewNop()
	}
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
		log:             log,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates every configured directory that is missing.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes payload to OutputDir/name atomically.
//
// PARAMETERS:
//   - payload: The bytes to write.
//   - name: The file name. Names with a directory part are rejected.
//   - mediaType: Logged only.
//
// RETURNS:
//   - The path of the written file.
//   - An error if name is not a plain file name, or the output directory or
//     file cannot be written.
func (fm *FileManager) Save(payload []byte, name, mediaType string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	target := filepath.Join(fm.OutputDir, name)
	if err := writeAtomic(target, payload); err != nil {
		return "", err
	}

	fm.log.Debug("Saved file",
		logger.String("path", target),
		logger.String("media_type", mediaType),
		logger.Int("bytes", len(payload)),
	)
	return target, nil
}

// writeAtomic writes data next to target and renames it into place.
func writeAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans InputDir for regular files matching pattern.
//
// PARAMETERS:
//   - pattern: A glob such as "*.txt". Empty means "*.txt".
//
// RETURNS:
//   - Matching paths in name order.
//   - An error if the pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.txt"
	}

	matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// DiscoverImages expands paths into image files. A directory contributes its
// direct children in name order; a file is kept as given. Anything whose
// sniffed content type is not image/* is skipped and logged.
//
// RETURNS:
//   - The image paths, in argument order.
//   - The skipped paths.
//   - An error if a path cannot be read.
func (fm *FileManager) DiscoverImages(paths []string) (images, skipped []string, err error) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		candidates := []string{p}
		if info.IsDir() {
			candidates, err = listDir(p)
			if err != nil {
				return nil, nil, err
			}
		}

		for _, c := range candidates {
			ok, err := IsImage(c)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				fm.log.Warn("Skipping non-image file", logger.String("path", c))
				skipped = append(skipped, c)
				continue
			}
			images = append(images, c)
		}
	}
	return images, skipped, nil
}

// IsImage sniffs the file content and reports whether it is an image.
func IsImage(path string) (bool, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}
	return strings.HasPrefix(mt.String(), "image/"), nil
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed paste file into InputArchiveDir.
//
// RETURNS:
//   - The new path.
//   - An error if the file cannot be moved.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.InputArchiveDir, filepath.Base(filePath))

	// Rename fails across devices; fall back to copy and delete.
	if err := os.Rename(filePath, archivePath); err != nil {
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}
	return archivePath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
