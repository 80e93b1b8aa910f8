package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	sinks := audit.MultiSink{audit.NewLogSink(logger)}
	if envConfig.AMQPAddress != "" {
		amqpSink, err := audit.NewAMQPSink(envConfig.AMQPAddress, envConfig.AMQPExchange, envConfig.AMQPQueue, logger)
		if err != nil {
			logrus.WithError(err).Fatal("audit.NewAMQPSink")
			return
		}
		defer amqpSink.Close()
		sinks = append(sinks, amqpSink)
	}

	delegator := operator.NewOperatorDelegator(dbStorage, sinks, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage.Reader())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Operator: delegator,
			Service:  svc,
			Checker:  auth.NewRoleChecker(),
		}
		return httpRest.Serve(ctx)
	})
	group.Go(func() error {
		<-ctx.Done()
		logrus.Info("ledger-server shutting down")
		return nil
	})

	if err := group.Wait(); err != nil {
		logrus.WithError(err).Error("ledger-server exited with error")
	}
}
