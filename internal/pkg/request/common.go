package request

import (
	"github.com/shareit-go/shareit/internal/pkg/paging"
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// PageParams binds the from/size query pair used by list endpoints.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Page converts the bound parameters into a paging.Page.
func (p *PageParams) Page() paging.Page {
	return paging.Page{From: p.From, Size: p.Size}
}
