package domain

// TotalPages returns the number of pages needed for count items. There is
// always at least one page, even for an empty list.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage clamps page into [1, TotalPages(count, pageSize)].
func ClampPage(page, count, pageSize int) int {
	if page < 1 {
		return 1
	}
	if total := TotalPages(count, pageSize); page > total {
		return total
	}
	return page
}

// Paginate returns the contacts on the given 1-based page.
// The page is clamped for the slice computation only; callers keep their own
// page number.
func Paginate(contacts []Contact, page, pageSize int) []Contact {
	if pageSize < 1 {
		pageSize = 1
	}
	page = ClampPage(page, len(contacts), pageSize)
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(contacts) {
		end = len(contacts)
	}
	if start >= end {
		return []Contact{}
	}
	result := make([]Contact, end-start)
	copy(result, contacts[start:end])
	return result
}

// FirstVisible returns the 1-based position of the first item on page, or 0
// when there is nothing to show.
func FirstVisible(page, pageSize, count int) int {
	if count == 0 {
		return 0
	}
	first := (page-1)*pageSize + 1
	if first > count {
		return count
	}
	return first
}

// LastVisible returns the 1-based position of the last item on page.
func LastVisible(page, pageSize, count int) int {
	last := page * pageSize
	if last > count {
		return count
	}
	return last
}
