package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lush-listing-kit/internal/archive"
	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

var (
	renameSKU string
	renameZip bool
)

var renameCmd = &cobra.Command{
	Use:   "rename --sku <code> <files or dirs...>",
	Short: "Number product photos under a SKU and pack them into a zip",
	Long: `Rename stages the given images (directories contribute their images in
name order), numbers them "<sku> 1.ext", "<sku> 2.ext", ... and saves
LUSH_<sku>.zip into the output directory. Source files are never touched.

  lush rename --sku LG-25 photos/lg25/
  lush rename --sku LG-25 front.png back.jpg --zip=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runRename(cmd.OutOrStdout(), newFileManager(), renameSKU, args, renameZip, time.Now())
		return err
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	renameCmd.Flags().StringVarP(&renameSKU, "sku", "s", "", "SKU code used as the name prefix")
	renameCmd.Flags().BoolVar(&renameZip, "zip", true, "Save the renamed batch as a zip")
}

// runRename stages, sequences and optionally saves one batch.
//
// RETURNS:
//   - The saved zip path, empty when zip is false.
//   - sequencer.ErrEmptyIdentifier, sequencer.ErrNoFiles, or an I/O error.
func runRename(out io.Writer, fm *utils.FileManager, sku string, paths []string, zip bool, now time.Time) (string, error) {
	files, err := stageImages(out, fm, paths)
	if err != nil {
		return "", err
	}

	batch, err := sequencer.NewBatch(sku, files, now)
	if err != nil {
		return "", err
	}
	renderNames(out, batch.Files)

	if !zip {
		return "", nil
	}
	path, err := saveBatchZip(fm, batch)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Saved %s\n", path)
	return path, nil
}

// stageImages turns paths into file handles, keeping images only.
func stageImages(out io.Writer, fm *utils.FileManager, paths []string) ([]sequencer.FileHandle, error) {
	images, skipped, err := fm.DiscoverImages(paths)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d non-image file(s)\n", len(skipped))
	}

	files := make([]sequencer.FileHandle, len(images))
	for i, p := range images {
		files[i] = sequencer.PathFile(p)
	}
	return files, nil
}

func saveBatchZip(fm *utils.FileManager, b sequencer.Batch) (string, error) {
	data, err := archive.BuildBatch(b)
	if err != nil {
		return "", err
	}
	path, err := fm.Save(data, archive.BatchFileName(b), archive.MediaType)
	if err != nil {
		return "", fmt.Errorf("failed to save zip: %w", err)
	}
	return path, nil
}
