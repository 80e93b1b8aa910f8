package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// DeleteUserInput is the Huma input for deleting a user.
type DeleteUserInput struct {
	ID    string `path:"id" format:"uuid" doc:"User UUID"`
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
}

// DeleteUserOutput is the Huma output for deleting a user.
type DeleteUserOutput struct {
	Status int
}

// DeleteUserHandler handles DELETE /v1/user/{id}.
type DeleteUserHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewDeleteUserHandler creates a new DeleteUserHandler.
func NewDeleteUserHandler(op actionProcessor, checker auth.Checker) *DeleteUserHandler {
	return &DeleteUserHandler{Operator: op, Checker: checker}
}

// Register registers the delete user endpoint with the Huma API.
func (h *DeleteUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-user",
		Method:        http.MethodDelete,
		Path:          "/v1/user/{id}",
		Summary:       "Delete user",
		Description:   "Deletes a user and everything they own: accounts, categories, transactions, transfers, and budgets.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteUserHandler) handle(ctx context.Context, input *DeleteUserInput) (*DeleteUserOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "users", auth.ActionDelete) {
		return nil, httperr.Forbidden()
	}

	userID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid user id", err)
	}

	action := &actions.DeleteUser{UserID: userID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to delete user")
	}

	return &DeleteUserOutput{Status: http.StatusNoContent}, nil
}
