package main

import (
	"log"

	"cstone_estimating/internal/adapter/http/routes"
	"cstone_estimating/internal/config"
	"cstone_estimating/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Estimating API
// @version         1.0
// @description     Estimate builder (pricing engine, team catalogs, stage payments) backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := routes.Run(*cfg, appLogger); err != nil {
		appLogger.Fatal("server stopped", zap.Error(err))
	}
}
