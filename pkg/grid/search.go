package grid

import "strings"

// applySearch keeps the rows where any searchable column contains the term
// as a case-insensitive substring. Column visibility is irrelevant here:
// hidden searchable columns still match. An empty term is a no-op.
func applySearch(rows []Record, term string, columns []Column) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}

	keys := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.Searchable {
			keys = append(keys, col.Key)
		}
	}
	if len(keys) == 0 {
		return []Record{}
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		for _, key := range keys {
			if strings.Contains(strings.ToLower(row.FieldString(key)), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
