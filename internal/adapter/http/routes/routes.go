package routes

import (
	"context"
	"fmt"

	_ "cstone_estimating/docs"
	"cstone_estimating/internal/adapter/http/handlers"
	"cstone_estimating/internal/adapter/persistence/repository"
	"cstone_estimating/internal/config"
	"cstone_estimating/internal/infrastructure/database"
	"cstone_estimating/internal/infrastructure/payments"
	"cstone_estimating/internal/infrastructure/rates"
	"cstone_estimating/internal/usecase"
	"cstone_estimating/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups what the router serves.
type Handlers struct {
	Estimate *handlers.EstimateHandler
	Catalog  *handlers.CatalogHandler
	Payment  *handlers.BillingPaymentHandler
}

// Run wires the DynamoDB repositories, the payment and exchange-rate clients and
// the use cases, then serves the API until the listener fails.
func Run(cfg config.Config, logger *zap.Logger) error {
	ddb, err := database.ConnectDynamoDB(context.Background(), cfg.AWS)
	if err != nil {
		return fmt.Errorf("connect dynamodb: %w", err)
	}

	estimateRepo := repository.NewEstimateDynamoRepository(ddb, cfg.Tables.Estimates)
	paymentRepo := repository.NewBillingPaymentDynamoRepository(ddb, cfg.Tables.Payments)
	catalogRepo := repository.NewCatalogDynamoRepository(ddb, cfg.Tables.Catalogs)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPago, logger)
	if err != nil {
		logger.Warn("Mercado Pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mpGateway
	}

	rateClient := rates.NewExchangeRateClient(cfg.ExchangeRate, logger)

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, catalogRepo, rateClient, cfg.MissingValue, logger)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, logger)
	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, estimateRepo, paymentGateway, cfg.MercadoPago, logger)

	router := NewRouter(Handlers{
		Estimate: handlers.NewEstimateHandler(estimateUseCase, logger),
		Catalog:  handlers.NewCatalogHandler(catalogUseCase, logger),
		Payment:  handlers.NewBillingPaymentHandler(paymentUseCase, cfg.MercadoPago.Mock, logger),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting http server", zap.String("addr", addr))
	return router.Run(addr)
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(h Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger), recovery(logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, h.Estimate, h.Catalog)
	addBillingRoutes(v1, h.Payment)
	return router
}
