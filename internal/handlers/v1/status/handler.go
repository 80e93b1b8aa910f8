package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/logging"
)

type Response struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

type Handler struct{}

func NewHandler() Handler {
	return Handler{}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Response{
		Status: "ok",
		Role:   auth.Role(req.Header.Get("X-Role")),
	})
}
