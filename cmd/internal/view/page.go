package view

// PageCount is ceil(n / size), 0 for an empty list.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page inside [1, max(1, count)].
func ClampPage(page, count int) int {
	if page > count {
		page = count
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the 1-based page of items. Out of range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
