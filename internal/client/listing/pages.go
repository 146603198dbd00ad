package listing

import "github.com/dmitrijs2005/pharmadmin/internal/client/models"

type Pagination = models.Pagination

// TotalPages is the number of pages needed for total items at size per page.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Window returns at most width consecutive page numbers around current,
// clamped to [1, total].
func Window(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return nil
	}
	current = min(max(current, 1), total)
	width = min(width, total)

	start := current - width/2
	start = max(start, 1)
	start = min(start, total-width+1)

	out := make([]int, width)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// Range returns the 1-based positions of the first and last item shown on
// page, e.g. 11 and 20 for page 2 of 35 items at 10 per page. An empty
// collection yields 0, 0.
func Range(page, size, total int) (from, to int) {
	if total <= 0 || size <= 0 || page < 1 {
		return 0, 0
	}
	from = (page-1)*size + 1
	if from > total {
		return 0, 0
	}
	to = min(page*size, total)
	return from, to
}
