package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/budget"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/category"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/report"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/user"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Operator *operator.OperatorDelegator
	Service  *service.Service
	Checker  auth.Checker
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests before returning.
func (r *Rest) Serve(ctx context.Context) error {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("ledger-server", "1.0.0"))
	r.registerHandlers(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		r.Logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(30)*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	return err
}

func (r *Rest) registerHandlers(api huma.API) {
	user.NewCreateUserHandler(r.Operator, r.Checker).Register(api)
	user.NewListUsersHandler(r.Service.User, r.Checker).Register(api)
	user.NewDeleteUserHandler(r.Operator, r.Checker).Register(api)

	account.NewCreateAccountHandler(r.Operator, r.Checker).Register(api)
	account.NewGetAccountHandler(r.Service.Account, r.Checker).Register(api)
	account.NewListAccountsHandler(r.Service.Account, r.Checker).Register(api)
	account.NewDeleteAccountHandler(r.Operator, r.Checker).Register(api)

	category.NewCreateCategoryHandler(r.Operator, r.Checker).Register(api)
	category.NewListCategoriesHandler(r.Service.Category, r.Checker).Register(api)
	category.NewDeleteCategoryHandler(r.Operator, r.Checker).Register(api)

	transaction.NewCreateTransactionHandler(r.Operator, r.Checker).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction, r.Checker).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction, r.Checker).Register(api)
	transaction.NewUpdateTransactionHandler(r.Operator, r.Checker).Register(api)
	transaction.NewDeleteTransactionHandler(r.Operator, r.Checker).Register(api)

	transfer.NewCreateTransferHandler(r.Operator, r.Checker).Register(api)
	transfer.NewListTransfersHandler(r.Service.Transfer, r.Checker).Register(api)
	transfer.NewUpdateTransferHandler(r.Operator, r.Checker).Register(api)
	transfer.NewDeleteTransferHandler(r.Operator, r.Checker).Register(api)

	budget.NewCreateBudgetHandler(r.Operator, r.Checker).Register(api)
	budget.NewListBudgetsHandler(r.Service.Budget, r.Checker).Register(api)
	budget.NewDeleteBudgetHandler(r.Operator, r.Checker).Register(api)

	report.NewCategoryTotalsHandler(r.Service.Report, r.Checker).Register(api)
	report.NewTransactionsInRangeHandler(r.Service.Report, r.Checker).Register(api)
}
