package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyManifest is returned when a manifest lists no batches.
var ErrEmptyManifest = errors.New("manifest lists no batches")

// Manifest describes the batches packed by `lush archive`:
//
//	batches:
//	  - sku: LG-25
//	    files: [photos/front.png, photos/back.jpg]
//	  - sku: LG-26
//	    files: [photos/lg26]
//
// A file entry may name a directory; its images are staged in name order.
type Manifest struct {
	Batches []ManifestBatch `yaml:"batches"`
}

// ManifestBatch is one SKU and its photos.
type ManifestBatch struct {
	SKU   string   `yaml:"sku"`
	Files []string `yaml:"files"`
}

// LoadManifest reads and checks a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	if len(m.Batches) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyManifest)
	}
	for i, b := range m.Batches {
		if strings.TrimSpace(b.SKU) == "" {
			return nil, fmt.Errorf("%s: batch %d has no sku", path, i+1)
		}
		if len(b.Files) == 0 {
			return nil, fmt.Errorf("%s: batch %q has no files", path, b.SKU)
		}
	}
	return &m, nil
}
