package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListUsersInput is the Huma input for listing users.
type ListUsersInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
}

// ListUsersResponseBody is the response body for listing users.
type ListUsersResponseBody struct {
	Users []User `json:"users" doc:"All users"`
}

// ListUsersOutput is the Huma output for listing users.
type ListUsersOutput struct {
	Body ListUsersResponseBody
}

// userLister is the interface for listing users.
type userLister interface {
	ListUsers(ctx context.Context) ([]service.User, error)
}

// ListUsersHandler handles GET /v1/user.
type ListUsersHandler struct {
	UserService userLister
	Checker     auth.Checker
}

// NewListUsersHandler creates a new ListUsersHandler.
func NewListUsersHandler(svc userLister, checker auth.Checker) *ListUsersHandler {
	return &ListUsersHandler{UserService: svc, Checker: checker}
}

// Register registers the list users endpoint with the Huma API.
func (h *ListUsersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/v1/user",
		Summary:     "List users",
		Description: "Returns every user.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *ListUsersHandler) handle(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "users", auth.ActionView) {
		return nil, httperr.Forbidden()
	}

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list users", err)
	}

	resp := ListUsersResponseBody{
		Users: make([]User, len(users)),
	}
	for i, u := range users {
		resp.Users[i] = User{
			ID:        u.ID.String(),
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		}
	}

	return &ListUsersOutput{Body: resp}, nil
}
