// Package loader ingests record collections from delimited text or
// structured documents, auto-detecting the format. It is the ingestion
// collaborator of the view pipeline: everything it returns is fully
// materialized in memory before a session starts.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// Collection is a loaded record set plus the stable field key order the
// column configuration defaults to: header order for CSV, sorted key union
// for document formats.
type Collection struct {
	Records []grid.Record
	Fields  []string
}

// LoadString loads a collection from a string, auto-detecting the format.
// Supports:
// - CSV with a header row (comma or tab delimited)
// - Single JSON array of objects (or a single object, one record)
// - Newline-delimited JSON (NDJSON): one JSON object per line
// - YAML: a sequence of mappings, or multi-document mappings (---)
// - TOML: an array of tables
func LoadString(input string) (*Collection, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("empty input")
	}

	// Multi-document YAML first (most restrictive marker).
	if strings.Contains(trimmed, "\n---") || strings.HasPrefix(trimmed, "---") {
		return loadMultiDocYAML(trimmed)
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(trimmed)
	}

	// TOML before JSON: a "[records]" header looks like a JSON array
	// prefix but is distinct from "[{...}]".
	if isLikelyTOML(trimmed) {
		return loadTOML(trimmed)
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return loadJSON(trimmed)
	}

	if isLikelyCSV(lines) {
		return LoadCSV(strings.NewReader(input))
	}

	return loadYAML(trimmed)
}

// LoadBytes loads a collection from raw bytes.
func LoadBytes(data []byte) (*Collection, error) {
	return LoadString(string(data))
}

// LoadFile reads a file and loads it as a collection.
func LoadFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadReader loads a collection from a stream (typically piped stdin).
func LoadReader(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return LoadBytes(data)
}

// LoadCSV parses delimited text with a header row into records keyed by the
// header cells. The delimiter is sniffed from the header: tab wins over
// comma when both appear. Short rows leave trailing fields empty; long rows
// are an error from the csv reader.
func LoadCSV(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	if i := strings.IndexByte(string(data), '\n'); i >= 0 {
		if strings.Contains(string(data)[:i], "\t") {
			cr.Comma = '\t'
		}
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}

	fields := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		fields[i] = strings.TrimSpace(h)
	}

	records := make([]grid.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(grid.Record, len(fields))
		for i, key := range fields {
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}
		records = append(records, rec)
	}
	return &Collection{Records: records, Fields: fields}, nil
}

// isLikelyCSV reports whether the first lines look like delimited text:
// a consistent comma or tab count and no structural YAML/JSON markers.
func isLikelyCSV(lines []string) bool {
	head := strings.TrimSpace(lines[0])
	delim := ","
	if strings.Contains(head, "\t") {
		delim = "\t"
	}
	n := strings.Count(head, delim)
	if n == 0 {
		return false
	}
	if strings.ContainsAny(head, "{}") || strings.Contains(head, ": ") {
		return false
	}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Quoted cells can hide extra delimiters, so only require the
		// same minimum count.
		if strings.Count(line, delim) < n {
			return false
		}
	}
	return true
}

// isLikelyNDJSON checks if lines look like newline-delimited JSON objects.
func isLikelyNDJSON(lines []string) bool {
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") {
			return false
		}
		seen++
	}
	return seen > 1
}

// isLikelyTOML checks for TOML table headers or key = value pairs before
// any JSON/YAML structure shows up.
func isLikelyTOML(input string) bool {
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[[") && strings.HasSuffix(line, "]]") {
			return true
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[{") || strings.HasPrefix(line, "- ") {
			return false
		}
		// key = value with no JSON punctuation reads as TOML.
		if i := strings.Index(line, "="); i > 0 && !strings.Contains(line[:i], ":") {
			return true
		}
		return false
	}
	return false
}

func loadJSON(input string) (*Collection, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return collectionFromDocs(docsFromRoot(data))
}

func loadNDJSON(input string) (*Collection, error) {
	var docs []any
	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("invalid NDJSON on line %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return collectionFromDocs(docs)
}

func loadYAML(input string) (*Collection, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return collectionFromDocs(docsFromRoot(data))
}

func loadMultiDocYAML(input string) (*Collection, error) {
	var docs []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return collectionFromDocs(docs)
}

func loadTOML(input string) (*Collection, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	// Use the first array-of-tables value as the record list.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if arr, ok := data[k].([]any); ok {
			return collectionFromDocs(arr)
		}
		if arr, ok := data[k].([]map[string]any); ok {
			docs := make([]any, len(arr))
			for i, m := range arr {
				docs[i] = m
			}
			return collectionFromDocs(docs)
		}
	}
	return nil, fmt.Errorf("TOML input has no array of tables")
}

// docsFromRoot unwraps a top-level array into its elements; anything else
// is a single one-record document.
func docsFromRoot(data any) []any {
	if arr, ok := data.([]any); ok {
		return arr
	}
	return []any{data}
}

// collectionFromDocs converts parsed documents to records. Every document
// must be a mapping; the field order is the sorted union of keys so the
// default column layout is deterministic regardless of map iteration.
func collectionFromDocs(docs []any) (*Collection, error) {
	records := make([]grid.Record, 0, len(docs))
	fieldSet := make(map[string]struct{})
	for i, doc := range docs {
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is %T, want an object", i, doc)
		}
		rec := make(grid.Record, len(m))
		for k, v := range m {
			rec[k] = v
			fieldSet[k] = struct{}{}
		}
		records = append(records, rec)
	}

	fields := make([]string, 0, len(fieldSet))
	for k := range fieldSet {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return &Collection{Records: records, Fields: fields}, nil
}
