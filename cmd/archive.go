package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lush-listing-kit/internal/archive"
	"github.com/ginjaninja78/lush-listing-kit/internal/config"
	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

var archiveManifest string

var archiveCmd = &cobra.Command{
	Use:   "archive --manifest <file>",
	Short: "Pack several photo batches into one master zip",
	Long: `Archive reads a manifest of batches and saves a single
LUSH_ARCHIVE_MASTER_<timestamp>.zip with one folder per SKU.

Manifest format (paths are relative to the manifest):

  batches:
    - sku: LG-25
      files: [lg25/front.png, lg25/back.jpg]
    - sku: LG-26
      files: [lg26]`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := config.LoadManifest(archiveManifest)
		if err != nil {
			return err
		}
		_, err = runArchive(cmd.OutOrStdout(), newFileManager(), m, filepath.Dir(archiveManifest), time.Now())
		return err
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringVarP(&archiveManifest, "manifest", "m", "", "Manifest of batches to pack")
	_ = archiveCmd.MarkFlagRequired("manifest")
}

// runArchive locks every manifest batch and saves the master zip.
func runArchive(out io.Writer, fm *utils.FileManager, m *config.Manifest, baseDir string, now time.Time) (string, error) {
	list := sequencer.NewArchiveList()

	for _, mb := range m.Batches {
		paths := make([]string, len(mb.Files))
		for i, f := range mb.Files {
			if filepath.IsAbs(f) {
				paths[i] = f
			} else {
				paths[i] = filepath.Join(baseDir, f)
			}
		}

		files, err := stageImages(out, fm, paths)
		if err != nil {
			return "", err
		}
		b, err := sequencer.NewBatch(mb.SKU, files, now)
		if err != nil {
			return "", fmt.Errorf("batch %s: %w", mb.SKU, err)
		}
		list.Add(b)
	}

	renderBatches(out, list.Batches())
	return saveMasterZip(out, fm, list.Batches(), now)
}

func saveMasterZip(out io.Writer, fm *utils.FileManager, batches []sequencer.Batch, now time.Time) (string, error) {
	data, err := archive.BuildMaster(batches)
	if err != nil {
		return "", err
	}
	path, err := fm.Save(data, archive.MasterFileName(now), archive.MediaType)
	if err != nil {
		return "", fmt.Errorf("failed to save master zip: %w", err)
	}
	fmt.Fprintf(out, "Saved %d batch(es) to %s\n", len(batches), path)
	return path, nil
}
