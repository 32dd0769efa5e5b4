// =============================================================================
// Listing Toolkit - Paste File Reader
// =============================================================================
//
// A paste file is plain text with one product description per line, the way
// the operator copies it out of a spreadsheet or chat:
//
//   Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123
//   Prada Wallet (LG26) 120
//
// Blank lines are skipped. Windows line endings and a leading UTF-8 byte
// order mark are tolerated. A .xlsx file is read row by row instead (see
// ReadSheetLines).
//
// USAGE:
//   r, err := pastefile.Open(path)
//   if err != nil {
//       return err
//   }
//   defer r.Close()
//
//   for r.Next() {
//       line := r.Line()
//   }
//
//   if err := r.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package pastefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineLength is the longest line the reader accepts.
const MaxLineLength = 1 << 20

const bom = "\uFEFF"

// Reader streams the non-blank lines of a paste file.
type Reader struct {
	closer     io.Closer
	scanner    *bufio.Scanner
	line       string
	lineNumber int
	err        error
}

// Open opens the paste file at path.
func Open(path string) (*Reader, error) {
	if IsSpreadsheet(path) {
		lines, err := ReadSheetLines(path)
		if err != nil {
			return nil, err
		}
		return NewReader(strings.NewReader(strings.Join(lines, "\n"))), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open paste file: %w", err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// NewReader reads paste lines from src. Close is a no-op for readers made
// this way.
func NewReader(src io.Reader) *Reader {
	s := bufio.NewScanner(src)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	return &Reader{scanner: s}
}

// Next advances to the next non-blank line. It returns false at the end of
// the input or on error.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		r.lineNumber++
		text := r.scanner.Text()
		if r.lineNumber == 1 {
			text = strings.TrimPrefix(text, bom)
		}
		text = strings.TrimRight(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		r.line = text
		return true
	}
	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("error reading line %d: %w", r.lineNumber+1, err)
	}
	r.line = ""
	return false
}

// Line returns the current line, untrimmed apart from the line ending.
func (r *Reader) Line() string {
	return r.line
}

// LineNumber returns the 1-based physical line number of the current line.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Err returns the first read error, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
