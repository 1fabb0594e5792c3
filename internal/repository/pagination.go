// Package repository provides data access layer implementations for the application.
package repository

const (
	// DefaultPageSize is used when the caller does not request a page size.
	DefaultPageSize = 10
	// MaxPageSize caps the number of items per page.
	MaxPageSize = 100
)

// NormalizePagination clamps 1-indexed page/pageSize to sane bounds and
// returns the SQL limit and offset.
func NormalizePagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// TotalPages returns the number of pages needed for `total` items. An empty
// result set has zero pages.
func TotalPages(total int64, pageSize int) int64 {
	if total <= 0 {
		return 0
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
