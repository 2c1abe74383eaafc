package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/db"
	"github.com/SirSluginston/SirSluginston-Backend/internal/handlers"
	"github.com/SirSluginston/SirSluginston-Backend/internal/logging"
	"github.com/SirSluginston/SirSluginston-Backend/internal/store"
)

func main() {
	ctx := context.Background()

	logger, err := logging.New("config-health", false)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := db.LoadAWSConfig(ctx)
	if err != nil {
		logger.Fatal("load aws config", zap.Error(err))
	}

	table, err := db.ResolveTableName(ctx, ssm.NewFromConfig(cfg))
	if err != nil {
		logger.Fatal("resolve table name", zap.Error(err))
	}

	st := store.NewDynamo(db.NewDynamoClient(cfg), table, logger)
	h := handlers.NewHealthHandler(st, "config-api", table, logger)
	lambda.Start(h.Handle)
}
