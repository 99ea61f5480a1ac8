package shaping

// MetaData describes a page within the whole result set. It is what the
// X-Pagination header carries.
type MetaData struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

// PagedResult is one page of items plus its metadata.
type PagedResult[T any] struct {
	Items []T `json:"items"`
	MetaData
}

// Paginate slices a page out of items, counting items itself.
func Paginate[T any](items []T, pageNumber, pageSize int) PagedResult[T] {
	return PaginateWithTotal(items, pageNumber, pageSize, int64(len(items)))
}

// PaginateWithTotal slices a page out of items using a total computed by the
// caller, e.g. by a count query. A page past the end is empty, not an error.
func PaginateWithTotal[T any](items []T, pageNumber, pageSize int, totalCount int64) PagedResult[T] {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	page := make([]T, 0, min(pageSize, len(items)))
	skip := int64(pageNumber-1) * int64(pageSize)
	if totalCount > 0 && skip < int64(len(items)) {
		end := min(skip+int64(pageSize), int64(len(items)))
		page = append(page, items[skip:end]...)
	}

	return PagedResult[T]{
		Items: page,
		MetaData: MetaData{
			CurrentPage: pageNumber,
			TotalPages:  totalPages,
			PageSize:    pageSize,
			TotalCount:  totalCount,
			HasPrevious: pageNumber > 1,
			HasNext:     pageNumber < totalPages,
		},
	}
}
