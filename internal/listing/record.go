// =============================================================================
// Listing Toolkit - Listing Records
// =============================================================================
//
// This file defines the listing record produced by the parser and the ordered
// collection the CLI accumulates before an export.
//
// LIFECYCLE:
//   - A Record is created once by Parse and never changes afterwards.
//   - A Collection only grows by Append, shrinks by Remove (by ID) or is
//     cleared wholesale by Reset.
//   - Display and export order is insertion order.
//
// =============================================================================

package listing

// LinkSlots is the fixed number of image URL columns carried by every record.
const LinkSlots = 8

// DefaultCost is the cost used when the pasted line carries no cost token.
const DefaultCost = "1"

// =============================================================================
// RECORD
// =============================================================================

// Record is one sellable item derived from a pasted line.
type Record struct {
	// ID is an opaque token used only to remove the record from a Collection.
	ID string `yaml:"id"`

	// Title is never empty. When a SKU was extracted it ends in " (<sku>)".
	Title string `yaml:"title"`

	// SKU is the variant code found in the trailing parenthesis, possibly empty.
	SKU string `yaml:"sku"`

	// Cost is the literal cost token, "1" when none was found.
	Cost string `yaml:"cost"`

	// Links holds the normalized image URLs, padded with empty strings.
	Links [LinkSlots]string `yaml:"links"`
}

// LinkCount returns the number of non-empty link slots.
func (r Record) LinkCount() int {
	n := 0
	for _, l := range r.Links {
		if l != "" {
			n++
		}
	}
	return n
}

// =============================================================================
// COLLECTION
// =============================================================================

// Collection is an insertion-ordered list of records with a single owner.
// It does no duplicate detection and is not safe for concurrent use.
type Collection struct {
	records []Record
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Append adds a record at the end of the collection.
func (c *Collection) Append(r Record) {
	c.records = append(c.records, r)
}

// Remove deletes the record with the given ID.
//
// RETURNS:
//   - true if a record was removed, false if no record has that ID.
func (c *Collection) Remove(id string) bool {
	for i, r := range c.records {
		if r.ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears the collection. Callers confirm with the operator first.
func (c *Collection) Reset() {
	c.records = nil
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of the records in insertion order.
func (c *Collection) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// =============================================================================
// BUSINESS FIELDS
// =============================================================================

// BusinessFields are the constant columns written on every exported row.
// They never come from the pasted text.
type BusinessFields struct {
	Category        string `yaml:"category" mapstructure:"category"`
	SubCategory     string `yaml:"sub_category" mapstructure:"sub_category"`
	Description     string `yaml:"description" mapstructure:"description"`
	Quantity        string `yaml:"quantity" mapstructure:"quantity"`
	Type            string `yaml:"type" mapstructure:"type"`
	Price           string `yaml:"price" mapstructure:"price"`
	ShippingProfile string `yaml:"shipping_profile" mapstructure:"shipping_profile"`
	Offerable       string `yaml:"offerable" mapstructure:"offerable"`
	Hazmat          string `yaml:"hazmat" mapstructure:"hazmat"`
	Condition       string `yaml:"condition" mapstructure:"condition"`
}

// DefaultBusinessFields returns the marketplace defaults for pre-owned
// luxury bags sold at auction.
func DefaultBusinessFields() BusinessFields {
	return BusinessFields{
		Category:        "Bags & Accessories",
		SubCategory:     "Luxury Bags & Accessories",
		Description:     "Pre-Owned",
		Quantity:        "1",
		Type:            "Auction",
		Price:           "1",
		ShippingProfile: "1lbs",
		Offerable:       "TRUE",
		Hazmat:          "Not Hazardous",
		Condition:       "Very Good",
	}
}

// WithDefaults fills every empty field from DefaultBusinessFields.
func (f BusinessFields) WithDefaults() BusinessFields {
	d := DefaultBusinessFields()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&f.Category, d.Category)
	fill(&f.SubCategory, d.SubCategory)
	fill(&f.Description, d.Description)
	fill(&f.Quantity, d.Quantity)
	fill(&f.Type, d.Type)
	fill(&f.Price, d.Price)
	fill(&f.ShippingProfile, d.ShippingProfile)
	fill(&f.Offerable, d.Offerable)
	fill(&f.Hazmat, d.Hazmat)
	fill(&f.Condition, d.Condition)
	return f
}
