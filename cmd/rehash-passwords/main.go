// Command rehash-passwords replaces legacy cleartext Customer passwords with
// bcrypt hashes.  Safe to run more than once: hashed rows are skipped.
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/banquet-booking/internal/config"
	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/repository"
	"github.com/iliyamo/banquet-booking/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.LoadDatabase()

	db, err := database.Open(database.Settings{
		User:    cfg.DBUser,
		Pass:    cfg.DBPass,
		Host:    cfg.DBHost,
		Port:    cfg.DBPort,
		Name:    cfg.DBName,
		Timeout: cfg.DBTimeout,
	})
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	customers, err := service.NewCustomerService(repository.NewCustomerRepo(database.NewPool(db, cfg.DBTimeout)), cfg.BcryptCost)
	if err != nil {
		logrus.WithError(err).Fatal("customer service")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	n, err := customers.RehashLegacyPasswords(ctx)
	if err != nil {
		logrus.WithError(err).WithField("rehashed", n).Fatal("rehash stopped")
	}
	logrus.WithField("rehashed", n).Info("legacy passwords migrated")
}
