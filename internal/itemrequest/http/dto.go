package http

import (
	"time"

	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type ItemRequestResponse struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	RequesterID string                  `json:"requester_id"`
	CreatedAt   time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewItemRequestResponse(r *itemrequest.WithItems) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
		Items:       itemHttp.NewItemResponses(r.Items),
	}
}

func newItemRequestResponses(reqs []*itemrequest.WithItems) []ItemRequestResponse {
	out := make([]ItemRequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = NewItemRequestResponse(r)
	}
	return out
}
