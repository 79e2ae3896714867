package grid

import "sort"

// applySort orders rows by the active sort column's declared format kind.
// Direction none passes rows through untouched, preserving the filter
// stage's order. The sort is stable, and descending is the exact negation
// of ascending rather than a second comparator.
func applySort(rows []Record, state SortState, columns []Column) []Record {
	if state.Dir == DirNone || state.Key == "" {
		return rows
	}

	kind := FormatText
	for _, col := range columns {
		if col.Key == state.Key {
			kind = col.Format.Kind
			break
		}
	}

	out := make([]Record, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(out[i].FieldString(state.Key), out[j].FieldString(state.Key), kind)
		if state.Dir == DirDescending {
			c = -c
		}
		return c < 0
	})
	return out
}

// CycleSort advances the sort state for a header interaction on the given
// column: ascending, then descending, then none. Activating a different
// column starts it at ascending and clears the previous column's state.
func CycleSort(state SortState, key string) SortState {
	if state.Key != key {
		return SortState{Key: key, Dir: DirAscending}
	}
	switch state.Dir {
	case DirAscending:
		return SortState{Key: key, Dir: DirDescending}
	case DirDescending:
		return SortState{}
	default:
		return SortState{Key: key, Dir: DirAscending}
	}
}
