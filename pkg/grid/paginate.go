package grid

// Paginate resolves the page window over a result set of total rows.
// It returns the half-open global index range [lo, hi) of the page, the
// clamped 1-based page number, and the total page count (always >= 1).
//
// A page past the end, typically because a filter just shrank the result
// set, is clamped down to the last page rather than reset to 1; a page
// below 1 is clamped up to 1.
func Paginate(total, size, page int) (lo, hi, clamped, totalPages int) {
	if size < 1 {
		size = 1
	}
	totalPages = (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	clamped = page
	if clamped > totalPages {
		clamped = totalPages
	}
	if clamped < 1 {
		clamped = 1
	}

	lo = (clamped - 1) * size
	hi = lo + size
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	return lo, hi, clamped, totalPages
}
