// =============================================================================
// Listing Toolkit - Record Checks
// =============================================================================
//
// The parser never rejects a line, so a typo in the paste silently turns into
// a listing with a default cost or no photos. This module inspects each
// parsed record against the line it came from and reports what looks wrong.
//
// Every finding is a warning: the record is still exported. The operator
// reads the warnings in the log and fixes the paste if needed.
//
// CHECKS:
//   - no_links:        no usable photo link
//   - links_dropped:   URLs without a file identifier were discarded
//   - links_truncated: more usable links than the sheet has slots
//   - no_sku:          no trailing parenthesized SKU
//   - default_cost:    no trailing number, cost fell back to the default
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
)

// Rule names.
const (
	RuleNoLinks        = "no_links"
	RuleLinksDropped   = "links_dropped"
	RuleLinksTruncated = "links_truncated"
	RuleNoSKU          = "no_sku"
	RuleDefaultCost    = "default_cost"
)

// =============================================================================
// WARNING TYPE
// =============================================================================

// Warning is one finding about one record.
type Warning struct {
	// Rule is the check that produced the warning.
	Rule string

	// Field is the record field concerned.
	Field string

	// Message is a human-readable explanation.
	Message string

	// RecordID identifies the record.
	RecordID string

	// LineNumber is the paste file line, 0 when unknown.
	LineNumber int
}

// Error implements the error interface.
func (w *Warning) Error() string {
	if w.LineNumber > 0 {
		return fmt.Sprintf("[WARNING] line %d, field '%s': %s", w.LineNumber, w.Field, w.Message)
	}
	return fmt.Sprintf("[WARNING] record %s, field '%s': %s", w.RecordID, w.Field, w.Message)
}

// =============================================================================
// RESULT
// =============================================================================

// Result collects the warnings for a set of records.
type Result struct {
	// Warnings contains every finding in input order.
	Warnings []*Warning

	// RecordsChecked is the number of records inspected.
	RecordsChecked int

	// RecordsFlagged is the number of records with at least one warning.
	RecordsFlagged int
}

// Add folds the warnings of one record into the result.
func (r *Result) Add(ws []*Warning) {
	r.RecordsChecked++
	if len(ws) > 0 {
		r.RecordsFlagged++
		r.Warnings = append(r.Warnings, ws...)
	}
}

// =============================================================================
// CHECKS
// =============================================================================

// Options turns individual checks off.
type Options struct {
	SkipSKU  bool
	SkipCost bool
}

// Validator inspects records.
type Validator struct {
	options Options
}

// NewValidator returns a Validator running every check.
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithOptions returns a Validator honoring opts.
func NewValidatorWithOptions(opts Options) *Validator {
	return &Validator{options: opts}
}

// Check inspects one record.
//
// PARAMETERS:
//   - rec: The parsed record.
//   - raw: The line rec was parsed from.
//   - lineNumber: The paste file line, or 0.
//
// RETURNS:
//   - The warnings, nil when the record looks fine.
func (v *Validator) Check(rec listing.Record, raw string, lineNumber int) []*Warning {
	var out []*Warning
	warn := func(rule, field, msg string) {
		out = append(out, &Warning{
			Rule:       rule,
			Field:      field,
			Message:    msg,
			RecordID:   rec.ID,
			LineNumber: lineNumber,
		})
	}

	found, usable := listing.LinkStats(raw)
	if usable == 0 {
		warn(RuleNoLinks, "links", "no photo link found")
	}
	if dropped := found - usable; dropped > 0 {
		warn(RuleLinksDropped, "links", fmt.Sprintf("%d link(s) without a file id were dropped", dropped))
	}
	if usable > listing.LinkSlots {
		warn(RuleLinksTruncated, "links",
			fmt.Sprintf("%d links found, only the first %d are exported", usable, listing.LinkSlots))
	}
	if !v.options.SkipSKU && rec.SKU == "" {
		warn(RuleNoSKU, "sku", "no trailing (SKU) in the title")
	}
	if !v.options.SkipCost && !listing.HasExplicitCost(raw) {
		warn(RuleDefaultCost, "cost", "no trailing cost, using "+listing.DefaultCost)
	}
	return out
}

// FormatWarnings renders warnings one per line for logs and the CLI.
func FormatWarnings(ws []*Warning) string {
	if len(ws) == 0 {
		return "No warnings."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d warning(s):\n", len(ws))
	for i, w := range ws {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w.Error())
	}
	return b.String()
}
