package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	server_config "github.com/carson-networks/ledger-server/internal/config"
)

func newMigrator() (*migrate.Migrate, error) {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
}

func currentVersion(m *migrate.Migrate) uint {
	version, _, err := m.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		return 0
	} else if err != nil {
		logrus.WithError(err).Fatal("m.Version")
	}
	return version
}

func main() {
	root := &cobra.Command{
		Use:   "db_migrations",
		Short: "Apply or roll back ledger-server schema migrations",
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			m, err := newMigrator()
			if err != nil {
				logrus.WithError(err).Fatal("newMigrator")
			}

			preMigrationVersion := currentVersion(m)
			err = m.Up()
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				logrus.WithError(err).Fatal("m.Up")
			}

			logrus.WithFields(logrus.Fields{
				"preMigrationVersion":  preMigrationVersion,
				"postMigrationVersion": currentVersion(m),
			}).Info("Migration status")
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Run: func(cmd *cobra.Command, args []string) {
			m, err := newMigrator()
			if err != nil {
				logrus.WithError(err).Fatal("newMigrator")
			}

			preMigrationVersion := currentVersion(m)
			err = m.Steps(-1)
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				logrus.WithError(err).Fatal("m.Steps")
			}

			logrus.WithFields(logrus.Fields{
				"preMigrationVersion":  preMigrationVersion,
				"postMigrationVersion": currentVersion(m),
			}).Info("Migration status")
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Run: func(cmd *cobra.Command, args []string) {
			m, err := newMigrator()
			if err != nil {
				logrus.WithError(err).Fatal("newMigrator")
			}
			logrus.WithField("version", currentVersion(m)).Info("Schema version")
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
