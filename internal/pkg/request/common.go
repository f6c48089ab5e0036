package request

// ListParams holds the pagination query parameters shared by list endpoints.
type ListParams struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}

// ByIDRequest is a common struct for endpoints that require a numeric user ID path parameter.
type ByIDRequest struct {
	ID int `uri:"id" binding:"required,min=1"`
}
