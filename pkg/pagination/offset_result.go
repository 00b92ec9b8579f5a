package pagination

// Meta is the pagination metadata attached to list responses.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// NewMeta computes metadata for a page, with Pages = ceil(total / limit).
func NewMeta(total int64, page, limit int) Meta {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Meta{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// OffsetResult represents a page of items with its metadata.
type OffsetResult[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"pagination"`
}

// NewOffsetResult pairs a page of items with its computed metadata.
func NewOffsetResult[T any](items []T, total int64, page, limit int) OffsetResult[T] {
	return OffsetResult[T]{
		Items: items,
		Meta:  NewMeta(total, page, limit),
	}
}
