package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams holds the from/size query parameters shared by list endpoints.
type ListParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1,max=100"`
}

// Page converts the query parameters into a Page.
func (p ListParams) Page() Page {
	return Page{From: p.From, Size: p.Size}
}
