// Package config declares the view configuration surface: the ordered
// column descriptors, page size choices, and search debounce, loaded from
// YAML or derived from a collection's field keys when no file is given.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// ColumnConfig is the YAML shape of one column descriptor.
type ColumnConfig struct {
	Key        string `yaml:"key"`
	Header     string `yaml:"header"`
	Hidden     bool   `yaml:"hidden"`
	Searchable *bool  `yaml:"searchable"`
	Sortable   *bool  `yaml:"sortable"`
	Filterable *bool  `yaml:"filterable"`
	Width      int    `yaml:"width"`
	Format     struct {
		Type      string `yaml:"type"`
		Transform string `yaml:"transform"`
		Currency  string `yaml:"currency"`
		Precision int    `yaml:"precision"`
	} `yaml:"format"`
}

// ViewConfig is the top-level YAML configuration file.
type ViewConfig struct {
	Columns          []ColumnConfig `yaml:"columns"`
	PageSizes        []int          `yaml:"pageSizes"`
	DefaultPageSize  int            `yaml:"defaultPageSize"`
	SearchDebounceMs int            `yaml:"searchDebounceMs"`
}

// DefaultPageSizes is the enumerated page size set used when the config
// does not specify one.
var DefaultPageSizes = []int{10, 25, 50, 100}

// Load reads and validates a view configuration file.
func Load(path string) (*ViewConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML view configuration.
func Parse(data []byte) (*ViewConfig, error) {
	var vc ViewConfig
	if err := yaml.Unmarshal(data, &vc); err != nil {
		return nil, fmt.Errorf("decode view config: %w", err)
	}
	if err := vc.Validate(); err != nil {
		return nil, err
	}
	return &vc, nil
}

// Validate checks the configuration invariants: unique column keys, a
// known format type per column, and a default page size from the
// enumerated set.
func (vc *ViewConfig) Validate() error {
	seen := make(map[string]struct{}, len(vc.Columns))
	for _, c := range vc.Columns {
		if c.Key == "" {
			return fmt.Errorf("column with empty key")
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("duplicate column key %q", c.Key)
		}
		seen[c.Key] = struct{}{}
		switch c.Format.Type {
		case "", "text", "number", "date", "currency":
		default:
			return fmt.Errorf("column %q: unknown format type %q", c.Key, c.Format.Type)
		}
		switch c.Format.Transform {
		case "", "none", "uppercase", "lowercase", "capitalize":
		default:
			return fmt.Errorf("column %q: unknown transform %q", c.Key, c.Format.Transform)
		}
	}
	if vc.DefaultPageSize != 0 && len(vc.PageSizes) > 0 {
		found := false
		for _, s := range vc.PageSizes {
			if s == vc.DefaultPageSize {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("defaultPageSize %d is not in pageSizes %v", vc.DefaultPageSize, vc.PageSizes)
		}
	}
	for _, s := range vc.PageSizes {
		if s < 1 {
			return fmt.Errorf("page size %d must be positive", s)
		}
	}
	if vc.SearchDebounceMs < 0 {
		return fmt.Errorf("searchDebounceMs must be non-negative, got %d", vc.SearchDebounceMs)
	}
	return nil
}

// Columns resolves the configured columns to grid descriptors. The
// eligibility flags default to true; YAML opts columns out, not in.
func (vc *ViewConfig) GridColumns() []grid.Column {
	cols := make([]grid.Column, 0, len(vc.Columns))
	for _, c := range vc.Columns {
		col := grid.Column{
			Key:        c.Key,
			Header:     c.Header,
			Visible:    !c.Hidden,
			Searchable: boolOr(c.Searchable, true),
			Sortable:   boolOr(c.Sortable, true),
			Filterable: boolOr(c.Filterable, true),
			Width:      c.Width,
			Format: grid.Format{
				Kind:           formatKind(c.Format.Type),
				Transform:      transform(c.Format.Transform),
				CurrencySymbol: c.Format.Currency,
				Precision:      c.Format.Precision,
			},
		}
		if col.Format.Kind == grid.FormatCurrency {
			if col.Format.CurrencySymbol == "" {
				col.Format.CurrencySymbol = "$"
			}
			if col.Format.Precision == 0 {
				col.Format.Precision = 2
			}
		}
		if col.Header == "" {
			col.Header = col.Key
		}
		cols = append(cols, col)
	}
	return cols
}

// Options resolves the session options, filling gaps with defaults.
func (vc *ViewConfig) Options() grid.Options {
	sizes := vc.PageSizes
	if len(sizes) == 0 {
		sizes = DefaultPageSizes
	}
	size := vc.DefaultPageSize
	if size == 0 {
		size = sizes[0]
	}
	debounce := grid.DefaultSearchDebounce
	if vc.SearchDebounceMs > 0 {
		debounce = time.Duration(vc.SearchDebounceMs) * time.Millisecond
	}
	return grid.Options{
		PageSizes:       sizes,
		DefaultPageSize: size,
		SearchDebounce:  debounce,
	}
}

// FromFields builds a default configuration from a collection's field
// keys: every field becomes a visible, searchable, sortable, filterable
// text column.
func FromFields(fields []string) *ViewConfig {
	vc := &ViewConfig{
		PageSizes: DefaultPageSizes,
	}
	for _, key := range fields {
		vc.Columns = append(vc.Columns, ColumnConfig{Key: key, Header: key})
	}
	return vc
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func formatKind(s string) grid.FormatKind {
	switch s {
	case "number":
		return grid.FormatNumber
	case "date":
		return grid.FormatDate
	case "currency":
		return grid.FormatCurrency
	default:
		return grid.FormatText
	}
}

func transform(s string) grid.Transform {
	switch s {
	case "uppercase":
		return grid.TransformUppercase
	case "lowercase":
		return grid.TransformLowercase
	case "capitalize":
		return grid.TransformCapitalize
	default:
		return grid.TransformNone
	}
}
