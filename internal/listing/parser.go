// =============================================================================
// Listing Toolkit - Record Parser
// =============================================================================
//
// This file turns one free-form pasted line into a Record. The operator
// usually pastes something like:
//
//   Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123 https://...
//
// PARSING PIPELINE:
//   1. Split the line at the first http(s):// marker into metadata and links
//   2. Strip a trailing numeric token from the metadata (cost)
//   3. Strip a trailing parenthesized group from what is left (SKU)
//   4. Compose the title, re-appending the SKU in parentheses
//   5. Normalize every file-sharing link to a direct-view URL
//   6. Pad or truncate the links to exactly LinkSlots entries
//
// Each stage is its own function and only sees what the previous stage left.
// Cost is stripped before the SKU is searched, so a number that trails a
// parenthesis always wins the cost slot.
//
// The parser never fails. Malformed input degrades to a best-effort record.
//
// =============================================================================

package listing

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// linkMarker finds where the links part of the line begins.
	linkMarker = regexp.MustCompile(`https?://`)

	// costPattern matches a whitespace-separated number at the end of the text.
	// Digits with at most one decimal point: "350", "12.50", "350.", ".5".
	// Whitespace includes Unicode spaces (no-break, ideographic) from pasted
	// web and chat text.
	costPattern = regexp.MustCompile(`[\s\p{Zs}]+(\d+\.?\d*|\.\d+)$`)

	// skuPattern matches a parenthesized group at the end of the text.
	skuPattern = regexp.MustCompile(`\((.*?)\)$`)

	// urlPattern matches one URL: scheme plus a run without whitespace or commas.
	urlPattern = regexp.MustCompile(`https?://[^\s\p{Zs},]+`)

	// drivePathID matches the /file/d/<id> form of a sharing link.
	drivePathID = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)

	// driveQueryID matches the id=<id> form of a sharing link.
	driveQueryID = regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`)
)

// viewURLPrefix is prepended to an extracted file identifier.
const viewURLPrefix = "https://drive.google.com/uc?export=view&id="

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Parse converts a raw pasted line into a Record with a fresh ID.
//
// Blank input is the caller's responsibility: use ParseLine to skip it.
// Parse on blank input still returns a record whose fields are all defaults.
func Parse(raw string) Record {
	return parseWithID(raw, uuid.NewString())
}

// ParseLine is Parse for line-oriented callers.
//
// RETURNS:
//   - The parsed record.
//   - false when the line is empty or whitespace only; no record is produced.
func ParseLine(raw string) (Record, bool) {
	if strings.TrimSpace(raw) == "" {
		return Record{}, false
	}
	return Parse(raw), true
}

// parseWithID runs the extraction pipeline and stamps the given ID.
func parseWithID(raw, id string) Record {
	trimmed := strings.TrimSpace(raw)

	meta, linksText := splitLinks(trimmed)
	meta, cost := extractCost(meta)
	base, sku := extractSKU(meta)

	title := composeTitle(base, sku)
	if title == "" {
		title = trimmed
	}

	return Record{
		ID:    id,
		Title: title,
		SKU:   sku,
		Cost:  cost,
		Links: padLinks(normalizeLinks(linksText)),
	}
}

// =============================================================================
// PIPELINE STAGES
// =============================================================================

// splitLinks splits the line at the first URL scheme marker.
//
// RETURNS:
//   - The metadata text before the marker, trimmed.
//   - The links text from the marker to the end, or "" when there is no marker.
func splitLinks(s string) (meta, links string) {
	loc := linkMarker.FindStringIndex(s)
	if loc == nil {
		return s, ""
	}
	return strings.TrimSpace(s[:loc[0]]), s[loc[0]:]
}

// extractCost removes a trailing numeric token from the metadata.
//
// A number glued to a word ("Bag350") is not a cost: the pattern requires
// whitespace before the token.
func extractCost(meta string) (rest, cost string) {
	m := costPattern.FindStringSubmatchIndex(meta)
	if m == nil {
		return meta, DefaultCost
	}
	return strings.TrimSpace(meta[:m[0]]), meta[m[2]:m[3]]
}

// extractSKU removes a trailing parenthesized group from the metadata.
// Parenthesized text anywhere else stays in the title.
func extractSKU(meta string) (rest, sku string) {
	m := skuPattern.FindStringSubmatchIndex(meta)
	if m == nil {
		return meta, ""
	}
	return strings.TrimSpace(meta[:m[0]]), meta[m[2]:m[3]]
}

// composeTitle re-appends the SKU so the exported title still shows it.
func composeTitle(base, sku string) string {
	base = strings.TrimSpace(base)
	if sku == "" {
		return base
	}
	if base == "" {
		return "(" + sku + ")"
	}
	return base + " (" + sku + ")"
}

// normalizeLinks rewrites every recognizable file-sharing link into the
// direct-view form. Links without an identifier are dropped.
func normalizeLinks(links string) []string {
	if links == "" {
		return nil
	}

	var out []string
	for _, u := range urlPattern.FindAllString(links, -1) {
		if id := fileID(u); id != "" {
			out = append(out, viewURLPrefix+id)
		}
	}
	return out
}

// fileID extracts the sharing identifier, path form first.
func fileID(u string) string {
	if m := drivePathID.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	if m := driveQueryID.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	return ""
}

// padLinks fits the links into exactly LinkSlots entries.
func padLinks(links []string) [LinkSlots]string {
	var out [LinkSlots]string
	copy(out[:], links)
	return out
}

// LinkStats reports how the links part of raw was handled.
//
// RETURNS:
//   - found: URLs present after the first scheme marker.
//   - usable: URLs that carried a file identifier, before truncation to
//     LinkSlots.
func LinkStats(raw string) (found, usable int) {
	_, linksText := splitLinks(strings.TrimSpace(raw))
	if linksText == "" {
		return 0, 0
	}
	return len(urlPattern.FindAllString(linksText, -1)), len(normalizeLinks(linksText))
}

// HasExplicitCost reports whether raw carries its own cost token. It tells a
// typed "1" apart from the DefaultCost fallback.
func HasExplicitCost(raw string) bool {
	meta, _ := splitLinks(strings.TrimSpace(raw))
	return costPattern.MatchString(meta)
}
