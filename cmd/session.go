// =============================================================================
// Listing Toolkit - Interactive Session
// =============================================================================
//
// This file defines the 'session' command: a line-oriented workbench that
// keeps a listing collection and a photo archive list alive between
// commands, the way the operator works through a day's stock.
//
// INPUT:
//   Any line not starting with ":" is parsed and added as a listing.
//   Lines starting with ":" are commands (see sessionHelp).
//
// Precondition failures (empty export, missing SKU, nothing staged) are
// printed and the session carries on. Clearing listings or batches asks
// for confirmation first.
//
// =============================================================================

package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lush-listing-kit/internal/config"
	"github.com/ginjaninja78/lush-listing-kit/internal/export"
	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
	"github.com/ginjaninja78/lush-listing-kit/internal/pastefile"
	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

const sessionHelp = `Listings:
  <text>              parse the line and add it as a listing
  :list               show the listings
  :rm <id>            remove a listing (an ID prefix is enough)
  :reset              remove every listing (asks first)
  :export [csv|xlsx]  save LUSH_MASTER_<timestamp> with every listing
Photos:
  :stage <paths...>   stage images (directories add their images)
  :staged             show the staged images
  :unstage            clear the staging area
  :lock <sku>         number the staged images under <sku> and keep the batch
  :batches            show the locked batches, newest first
  :zip <id>           save one batch as LUSH_<sku>.zip
  :zipall             save every batch as LUSH_ARCHIVE_MASTER_<timestamp>.zip
  :drop <id>          remove a batch
  :reset batches      remove every batch (asks first)
Other:
  :help               show this help
  :quit               leave the session`

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Interactive workbench for listings and photo batches",
	Long: `Session starts an interactive loop. Paste product lines to add listings,
stage and lock photo batches, and save exports or zips when ready.

Type :help inside the session for the command list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd.InOrStdin(), cmd.OutOrStdout(), appConfig, newFileManager(), appLog)
		return s.run()
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// =============================================================================
// SESSION STATE
// =============================================================================

// session is the single owner of the listing collection and archive list.
type session struct {
	in        *bufio.Scanner
	out       io.Writer
	cfg       *config.Config
	fm        *utils.FileManager
	log       logger.Logger
	validator *validation.Validator
	now       func() time.Time

	records *listing.Collection
	staged  []sequencer.FileHandle
	batches *sequencer.ArchiveList
}

func newSession(in io.Reader, out io.Writer, cfg *config.Config, fm *utils.FileManager, log logger.Logger) *session {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), pastefile.MaxLineLength)
	return &session{
		in:        sc,
		out:       out,
		cfg:       cfg,
		fm:        fm,
		log:       log,
		validator: validation.NewValidatorWithOptions(cfg.Checks()),
		now:       time.Now,
		records:   listing.NewCollection(),
		batches:   sequencer.NewArchiveList(),
	}
}

// run reads commands until :quit or end of input.
func (s *session) run() error {
	fmt.Fprintln(s.out, "lush session. Paste listings, or :help for commands.")
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if quit := s.handle(s.in.Text()); quit {
			return nil
		}
	}
}

// handle executes one input line and reports whether the session ends.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		s.addListing(line)
		return false
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	var err error
	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(s.out, sessionHelp)
	case ":list", ":ls":
		renderRecords(s.out, s.records.Records())
	case ":rm":
		err = s.removeListing(args)
	case ":reset":
		s.reset(args)
	case ":export":
		err = s.export(args)
	case ":stage":
		err = s.stage(args)
	case ":staged":
		s.showStaged()
	case ":unstage":
		s.staged = nil
		fmt.Fprintln(s.out, "Staging area cleared")
	case ":lock":
		err = s.lock(args)
	case ":batches":
		renderBatches(s.out, s.batches.Batches())
	case ":zip":
		err = s.zipBatch(args)
	case ":zipall":
		_, err = saveMasterZip(s.out, s.fm, s.batches.Batches(), s.now())
	case ":drop":
		err = s.dropBatch(args)
	default:
		err = fmt.Errorf("unknown command %s (try :help)", name)
	}

	if err != nil {
		s.log.Debug("Session command failed", logger.String("command", name), logger.Error(err))
		fmt.Fprintf(s.out, "  ✗ %v\n", err)
	}
	return false
}

// =============================================================================
// LISTINGS
// =============================================================================

func (s *session) addListing(line string) {
	rec, ok := listing.ParseLine(line)
	if !ok {
		return
	}
	s.records.Append(rec)

	sku := rec.SKU
	if sku == "" {
		sku = "no sku"
	}
	fmt.Fprintf(s.out, "  + %s [%s] cost %s, %d image(s)  id %s\n",
		rec.Title, sku, rec.Cost, rec.LinkCount(), shortID(rec.ID))
	renderWarnings(s.out, s.validator.Check(rec, line, 0))
}

func (s *session) removeListing(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: :rm <id>")
	}
	records := s.records.Records()
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	id, err := resolveID(args[0], ids)
	if err != nil {
		return err
	}
	s.records.Remove(id)
	fmt.Fprintf(s.out, "Removed %s, %d listing(s) left\n", shortID(id), s.records.Len())
	return nil
}

func (s *session) reset(args []string) {
	if len(args) > 0 && args[0] == "batches" {
		if s.confirm(fmt.Sprintf("Remove all %d batch(es)?", s.batches.Len())) {
			s.batches.Reset()
			fmt.Fprintln(s.out, "Batches cleared")
		}
		return
	}
	if s.confirm(fmt.Sprintf("Remove all %d listing(s)?", s.records.Len())) {
		s.records.Reset()
		fmt.Fprintln(s.out, "Listings cleared")
	}
}

func (s *session) export(args []string) error {
	format := s.cfg.Format()
	if len(args) > 0 {
		f, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		format = f
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, s.records.Records(), s.cfg.ListingDefaults); err != nil {
		return err
	}
	path, err := s.fm.Save(buf.Bytes(), export.FileName(s.now(), format.Extension()), format.MediaType())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported %d listing(s) to %s\n", s.records.Len(), path)
	return nil
}

// =============================================================================
// PHOTOS
// =============================================================================

func (s *session) stage(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: :stage <paths...>")
	}
	files, err := stageImages(s.out, s.fm, args)
	if err != nil {
		return err
	}
	s.staged = append(s.staged, files...)
	fmt.Fprintf(s.out, "Staged %d image(s), %d total\n", len(files), len(s.staged))
	return nil
}

func (s *session) showStaged() {
	if len(s.staged) == 0 {
		fmt.Fprintln(s.out, "Nothing staged")
		return
	}
	for i, f := range s.staged {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, f.Name())
	}
	fmt.Fprintf(s.out, "%d image(s) staged\n", len(s.staged))
}

func (s *session) lock(args []string) error {
	sku := strings.Join(args, " ")
	b, err := sequencer.NewBatch(sku, s.staged, s.now())
	if err != nil {
		return err
	}
	s.batches.Add(b)
	s.staged = nil
	s.log.Info("Locked batch",
		logger.String("sku", b.Identifier),
		logger.Strings("files", b.Names()),
	)

	renderNames(s.out, b.Files)
	fmt.Fprintf(s.out, "Locked batch %s (%s)\n", shortID(b.ID), b.Identifier)
	return nil
}

func (s *session) findBatch(args []string, usage string) (sequencer.Batch, error) {
	if len(args) != 1 {
		return sequencer.Batch{}, errors.New(usage)
	}
	batches := s.batches.Batches()
	ids := make([]string, len(batches))
	for i, b := range batches {
		ids[i] = b.ID
	}
	id, err := resolveID(args[0], ids)
	if err != nil {
		return sequencer.Batch{}, err
	}
	b, _ := s.batches.Get(id)
	return b, nil
}

func (s *session) zipBatch(args []string) error {
	b, err := s.findBatch(args, "usage: :zip <id>")
	if err != nil {
		return err
	}
	path, err := saveBatchZip(s.fm, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
	return nil
}

func (s *session) dropBatch(args []string) error {
	b, err := s.findBatch(args, "usage: :drop <id>")
	if err != nil {
		return err
	}
	s.batches.Remove(b.ID)
	fmt.Fprintf(s.out, "Dropped batch %s (%s)\n", shortID(b.ID), b.Identifier)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// confirm asks a yes/no question on the session input. Anything but y/yes
// is a no.
func (s *session) confirm(question string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", question)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s.in.Text())) {
	case "y", "yes":
		return true
	default:
		fmt.Fprintln(s.out, "Cancelled")
		return false
	}
}

// resolveID finds the one ID starting with prefix.
func resolveID(prefix string, ids []string) (string, error) {
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no item with id %q", prefix)
	}
	return match, nil
}
