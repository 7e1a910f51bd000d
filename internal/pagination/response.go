package pagination

// Pages returns the number of pages needed to hold total rows, limit rows per
// page. It is 0 when total is 0. A limit below 1 is treated as the default
// limit so the division is always defined.
func Pages(total int64, limit int) int64 {
	if total <= 0 {
		return 0
	}
	if limit < 1 {
		limit = Current().DefaultLimit
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}
