// =============================================================================
// Listing Toolkit - Batch Sequencer
// =============================================================================
//
// This module renames a group of product photos under one SKU code:
//
//   LG-25 + [front.png, side.jpeg, back] -> LG-25 1.png, LG-25 2.jpeg, LG-25 3.jpg
//
// NAMING RULES:
//   - Numbering is 1-based and follows input order exactly
//   - The extension is whatever follows the last "." of the original name
//   - Names without an extension get "jpg"
//   - No collision detection and no renumbering after removal
//
// =============================================================================

package sequencer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultExtension is used for files whose name carries no extension.
const DefaultExtension = "jpg"

var (
	// ErrEmptyIdentifier is returned when the SKU code is empty or whitespace.
	ErrEmptyIdentifier = errors.New("please enter a SKU code")

	// ErrNoFiles is returned when there is nothing to rename.
	ErrNoFiles = errors.New("please stage some images first")

	// ErrIdentifierPath is returned when the SKU code contains a path
	// separator. The code becomes a file name and a zip folder name.
	ErrIdentifierPath = errors.New("SKU code cannot contain / or \\")
)

// =============================================================================
// FILE HANDLES
// =============================================================================

// FileHandle is an opaque source file: a name and a way to read its bytes.
type FileHandle interface {
	// Name is the original file name, used only for its extension.
	Name() string

	// Open returns the file content. The caller closes it.
	Open() (io.ReadCloser, error)
}

// PathFile is a FileHandle backed by a path on disk.
type PathFile string

// Name returns the base name of the path.
func (p PathFile) Name() string {
	return filepath.Base(string(p))
}

// Open opens the file for reading.
func (p PathFile) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// NamedFile pairs a source file with its computed target name.
type NamedFile struct {
	Source FileHandle
	Name   string
}

// =============================================================================
// SEQUENCING
// =============================================================================

// Sequence computes the new name of every file.
//
// PARAMETERS:
//   - identifier: The SKU code; surrounding whitespace is ignored.
//   - files: The files in the order they were staged.
//
// RETURNS:
//   - One NamedFile per input, in input order.
//   - ErrEmptyIdentifier, ErrIdentifierPath or ErrNoFiles; no names are
//     produced.
func Sequence(identifier string, files []FileHandle) ([]NamedFile, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return nil, ErrEmptyIdentifier
	}
	if strings.ContainsAny(id, `/\`) {
		return nil, ErrIdentifierPath
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	named := make([]NamedFile, len(files))
	for i, f := range files {
		named[i] = NamedFile{
			Source: f,
			Name:   fmt.Sprintf("%s %d.%s", id, i+1, Extension(f.Name())),
		}
	}
	return named, nil
}

// Extension returns the text after the last "." of name, or DefaultExtension.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return DefaultExtension
	}
	return name[i+1:]
}

// =============================================================================
// BATCHES
// =============================================================================

// Batch is one locked group of renamed files.
type Batch struct {
	ID         string
	Identifier string
	Files      []NamedFile
	CreatedAt  time.Time
}

// NewBatch sequences the files and wraps them in a Batch stamped with now.
//
// RETURNS:
//   - The batch.
//   - ErrEmptyIdentifier, ErrIdentifierPath or ErrNoFiles; no batch is
//     created.
func NewBatch(identifier string, files []FileHandle, now time.Time) (Batch, error) {
	named, err := Sequence(identifier, files)
	if err != nil {
		return Batch{}, err
	}
	return Batch{
		ID:         uuid.NewString(),
		Identifier: strings.TrimSpace(identifier),
		Files:      named,
		CreatedAt:  now,
	}, nil
}

// Names returns the target names of the batch in order.
func (b Batch) Names() []string {
	names := make([]string, len(b.Files))
	for i, f := range b.Files {
		names[i] = f.Name
	}
	return names
}
