package main

import (
	"context"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/drivers/database"
	"hospital-lab-service/internal/app/drivers/logger"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	created, err := database.EnsureIndexes(ctx, mongoDB)
	if err != nil {
		log.Fatalf("Error creating indexes: %v", err)
	}

	for collection, names := range created {
		log.WithFields(logrus.Fields{
			"collection": collection,
			"indexes":    names,
		}).Info("Indexes ensured")
	}

	err = mongoDB.Client().Disconnect(ctx)
	if err != nil {
		log.Errorf("Error disconnecting mongo: %v", err)
	}
	log.Infof("Applied indexes on %d collections", len(created))
}
