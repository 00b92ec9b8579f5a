package pagination

// OffsetRequest represents an offset-based pagination request.
// Pages are 1-indexed.
type OffsetRequest struct {
	Page  int `json:"page" query:"page"`
	Limit int `json:"limit" query:"limit"`
}

// Validate normalizes offset pagination parameters in place.
func (r *OffsetRequest) Validate() error {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = PageDefaultSize
	}
	if r.Limit > PageMaxSize {
		r.Limit = PageMaxSize
	}
	return nil
}

// Offset returns the number of items to skip for this page.
func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
