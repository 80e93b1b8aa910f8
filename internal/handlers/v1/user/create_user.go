package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// CreateUserBody is the request body for creating a user.
type CreateUserBody struct {
	Username     string `json:"username" required:"true" minLength:"1" doc:"Username"`
	Email        string `json:"email" required:"true" format:"email" doc:"Email address"`
	PasswordHash string `json:"passwordHash" required:"true" minLength:"1" doc:"Pre-hashed password, hashing happens upstream"`
}

// CreateUserInput is the Huma input for creating a user.
type CreateUserInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  CreateUserBody
}

// CreateUserResponse is the response body for creating a user.
type CreateUserResponse struct {
	ID string `json:"id" doc:"UUID of the created user"`
}

// CreateUserOutput is the Huma output for creating a user.
type CreateUserOutput struct {
	Status int
	Body   CreateUserResponse
}

// CreateUserHandler handles POST /v1/user.
type CreateUserHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewCreateUserHandler creates a new CreateUserHandler.
func NewCreateUserHandler(op actionProcessor, checker auth.Checker) *CreateUserHandler {
	return &CreateUserHandler{Operator: op, Checker: checker}
}

// Register registers the create user endpoint with the Huma API.
func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/v1/user",
		Summary:       "Create user",
		Description:   "Registers a new user.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "users", auth.ActionCreate) {
		return nil, httperr.Forbidden()
	}

	action := &actions.CreateUser{
		Username:     input.Body.Username,
		Email:        input.Body.Email,
		PasswordHash: input.Body.PasswordHash,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to create user")
	}

	return &CreateUserOutput{
		Status: http.StatusCreated,
		Body:   CreateUserResponse{ID: action.Created.ID.String()},
	}, nil
}
