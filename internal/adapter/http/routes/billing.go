package routes

import (
	"cstone_estimating/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates       = "/estimates"
	PathTeams           = "/teams"
	PathPayments        = "/payments"
	PathPaymentReceipts = "/payment-receipts"
)

func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, catalogHandler *handlers.CatalogHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("/preview", estimateHandler.PreviewEstimate)
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PUT("/:id", estimateHandler.UpdateEstimate)
		estimates.GET("/:id/pdf-values", estimateHandler.GetPDFValues)
		estimates.POST("/:id/products/:product_id/euro-rate", estimateHandler.RefreshEuroRate)
		estimates.PATCH("/:id/approve", estimateHandler.ApproveEstimate)
		estimates.PATCH("/:id/reject", estimateHandler.RejectEstimate)
		estimates.PATCH("/:id/cancel", estimateHandler.CancelEstimate)
	}

	teams := rg.Group(PathTeams)
	{
		teams.GET("/:team_id/estimates", estimateHandler.ListTeamEstimates)
		teams.GET("/:team_id/catalog", catalogHandler.GetCatalog)
		teams.PUT("/:team_id/catalog", catalogHandler.SaveCatalog)
	}
}

func addBillingRoutes(rg *gin.RouterGroup, paymentHandler *handlers.BillingPaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:estimate_id/:stage", paymentHandler.CreateStagePayment)
		payments.GET("/:estimate_id", paymentHandler.ListPayments)
	}
	rg.GET(PathPaymentReceipts+"/:payment_id", paymentHandler.GetPayment)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
