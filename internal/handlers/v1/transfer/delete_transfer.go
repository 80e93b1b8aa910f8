package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// DeleteTransferInput is the Huma input for deleting a transfer.
type DeleteTransferInput struct {
	ID    string `path:"id" format:"uuid" doc:"Transfer UUID"`
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
}

// DeleteTransferOutput is the Huma output for deleting a transfer.
type DeleteTransferOutput struct {
	Status int
}

// DeleteTransferHandler handles DELETE /v1/transfer/{id}.
type DeleteTransferHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewDeleteTransferHandler creates a new DeleteTransferHandler.
func NewDeleteTransferHandler(op actionProcessor, checker auth.Checker) *DeleteTransferHandler {
	return &DeleteTransferHandler{Operator: op, Checker: checker}
}

// Register registers the delete transfer endpoint with the Huma API.
func (h *DeleteTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transfer",
		Method:        http.MethodDelete,
		Path:          "/v1/transfer/{id}",
		Summary:       "Delete transfer",
		Description:   "Deletes a transfer and reverses its movement between the two accounts.",
		Tags:          []string{"Transfers"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransferHandler) handle(ctx context.Context, input *DeleteTransferInput) (*DeleteTransferOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "transfers", auth.ActionDelete) {
		return nil, httperr.Forbidden()
	}

	transferID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transfer id", err)
	}

	action := &actions.DeleteTransfer{TransferID: transferID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to delete transfer")
	}

	return &DeleteTransferOutput{Status: http.StatusNoContent}, nil
}
