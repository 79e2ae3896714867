// Package grid computes derived views over in-memory record collections:
// global search, per-column filters, type-aware sorting, pagination, and
// multi-mode row selection, combined in a fixed pipeline order so that the
// same inputs always reproduce the same page of rows.
package grid

import "fmt"

// Record is one uniform row: a mapping from field key to a raw scalar value.
// Field keys are stable and shared across all records in a collection.
type Record map[string]any

// FieldString returns the string form of a field value. Missing fields
// render as the empty string.
func (r Record) FieldString(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// FormatKind is the closed set of per-column value kinds. The kind is
// declared once per column at configuration time and drives both comparison
// and display formatting.
type FormatKind string

const (
	FormatText     FormatKind = "text"
	FormatNumber   FormatKind = "number"
	FormatDate     FormatKind = "date"
	FormatCurrency FormatKind = "currency"
)

// Transform is a display-time text transform applied to formatted cells.
type Transform string

const (
	TransformNone       Transform = ""
	TransformUppercase  Transform = "uppercase"
	TransformLowercase  Transform = "lowercase"
	TransformCapitalize Transform = "capitalize"
)

// Format describes how a column's values are interpreted and displayed.
type Format struct {
	Kind           FormatKind
	Transform      Transform
	CurrencySymbol string
	Precision      int
}

// Column configures one field of the record collection: its header label,
// which pipeline stages it participates in, and its display format.
// Key uniqueness across the column set is a caller contract and is not
// revalidated per operation.
type Column struct {
	Key        string
	Header     string
	Visible    bool
	Searchable bool
	Sortable   bool
	Filterable bool
	Format     Format
	Width      int // width hint in cells; 0 = auto
}

// Operator identifies one filter comparison.
type Operator string

const (
	OpContains    Operator = "contains"
	OpEquals      Operator = "equals"
	OpStartsWith  Operator = "starts-with"
	OpEndsWith    Operator = "ends-with"
	OpGreaterThan Operator = "greater-than"
	OpLessThan    Operator = "less-than"
)

// Condition is one operator+value test attached to a column. A column may
// hold any number of conditions; they are OR-combined within the column.
type Condition struct {
	Op    Operator
	Value string
}

// Direction is the sort direction of the single active sort column.
type Direction int

const (
	DirNone Direction = iota
	DirAscending
	DirDescending
)

func (d Direction) String() string {
	switch d {
	case DirAscending:
		return "ascending"
	case DirDescending:
		return "descending"
	default:
		return "none"
	}
}

// SortState holds the at-most-one active (column, direction) sort.
// A zero SortState means no sorting is applied.
type SortState struct {
	Key string
	Dir Direction
}

// PageState holds the pagination inputs. Page is 1-based.
type PageState struct {
	Size int
	Page int
}

// EmptySignal reports the user-visible empty states of a view. These are
// signals, not errors: a view with no matching rows is still a valid view.
type EmptySignal int

const (
	// EmptyNone means the view has visible columns and at least one row.
	EmptyNone EmptySignal = iota
	// EmptyNoColumns means no column is currently visible, regardless of
	// how many rows pass the filters.
	EmptyNoColumns
	// EmptyNoRows means columns are visible but no row survived the
	// search and filter stages.
	EmptyNoRows
)

// ViewResult is the derived, read-only output of one pipeline evaluation:
// the rows of the current page plus the aggregate counts later stages and
// the rendering host need.
type ViewResult struct {
	// Rows is the ordered slice of records on the current page.
	Rows []Record
	// Offset is the global index of the first row on the page, i.e. its
	// position within the full filtered/sorted sequence.
	Offset int
	// TotalRows is the filtered (pre-pagination) row count.
	TotalRows int
	// TotalPages is always at least 1.
	TotalPages int
	// Page is the clamped 1-based page number actually shown.
	Page int
	Empty EmptySignal
}
