package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransfersCursor represents a pagination cursor in request and
// response bodies.
type ListTransfersCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransfersBody is the request body for listing transfers.
type ListTransfersBody struct {
	AccountID string               `json:"accountID,omitempty" format:"uuid" doc:"Restrict to transfers touching this account"`
	Cursor    *ListTransfersCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransfersInput is the Huma input for listing transfers.
type ListTransfersInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  ListTransfersBody
}

// ListTransfersResponseBody is the response body for listing transfers.
type ListTransfersResponseBody struct {
	Transfers  []Transfer           `json:"transfers" doc:"Page of transfers"`
	NextCursor *ListTransfersCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransfersOutput is the Huma output for listing transfers.
type ListTransfersOutput struct {
	Body ListTransfersResponseBody
}

// transferLister is the interface for listing transfers.
type transferLister interface {
	ListTransfers(ctx context.Context, accountID *uuid.UUID, cursor *service.TransferCursor) ([]service.Transfer, *service.TransferCursor, error)
}

// ListTransfersHandler handles POST /v1/transfer/list.
type ListTransfersHandler struct {
	TransferService transferLister
	Checker         auth.Checker
}

// NewListTransfersHandler creates a new ListTransfersHandler.
func NewListTransfersHandler(svc transferLister, checker auth.Checker) *ListTransfersHandler {
	return &ListTransfersHandler{TransferService: svc, Checker: checker}
}

// Register registers the list transfers endpoint with the Huma API.
func (h *ListTransfersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transfers",
		Method:      http.MethodPost,
		Path:        "/v1/transfer/list",
		Summary:     "List transfers",
		Description: "Returns a paginated list of transfers using cursor-based pagination.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ListTransfersHandler) handle(ctx context.Context, input *ListTransfersInput) (*ListTransfersOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "transfers", auth.ActionView) {
		return nil, httperr.Forbidden()
	}

	var accountID *uuid.UUID
	if input.Body.AccountID != "" {
		parsed, err := uuid.FromString(input.Body.AccountID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
		}
		accountID = &parsed
	}

	var requestCursor *service.TransferCursor
	if input.Body.Cursor != nil {
		if input.Body.Cursor.Position < 0 {
			return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
		}
		requestCursor = &service.TransferCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	transfers, nextCursor, err := h.TransferService.ListTransfers(ctx, accountID, requestCursor)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transfers", err)
	}

	resp := ListTransfersResponseBody{
		Transfers: make([]Transfer, len(transfers)),
	}
	for i, t := range transfers {
		resp.Transfers[i] = transferFromService(t)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListTransfersCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListTransfersOutput{Body: resp}, nil
}
