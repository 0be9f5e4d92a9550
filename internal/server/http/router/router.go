package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/onboarding/internal/config"
	"github.com/polkiloo/onboarding/internal/metrics"
	"github.com/polkiloo/onboarding/internal/server/http/handlers"
	"github.com/polkiloo/onboarding/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OnboardingFacade, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	maxBody := cfg.MaxRequestBody
	if maxBody <= 0 {
		maxBody = config.DefaultMaxRequestBody
	}
	engine.MaxMultipartMemory = maxBody

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest(maxBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	healthHandler := handlers.NewHealthHandler(facade)
	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	stepHandler := handlers.NewStepHandler(facade)
	documentHandler := handlers.NewDocumentHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade, facade)
	authorizationHandler := handlers.NewAuthorizationHandler(facade)

	wizard := engine.Group("")
	wizard.Use(middleware.SessionRequired(facade, cfg.CookieSecure, logger))
	wizard.GET("/locations", stepHandler.Locations)
	wizard.GET("/steps", stepHandler.Steps)
	wizard.GET("/location", stepHandler.Location)
	wizard.POST("/location", stepHandler.SaveLocation)
	wizard.GET("/account", stepHandler.Account)
	wizard.POST("/account", stepHandler.SaveAccount)
	wizard.GET("/payment", stepHandler.Payment)
	wizard.POST("/payment", stepHandler.SavePayment)
	wizard.GET("/acknowledgements", stepHandler.Acknowledgements)
	wizard.POST("/acknowledgements", stepHandler.SaveAcknowledgements)
	wizard.GET("/medical-director", stepHandler.MedicalDirector)
	wizard.POST("/medical-director", stepHandler.SaveMedicalDirector)

	wizard.GET("/account/documents", documentHandler.List)
	wizard.POST("/account/documents", documentHandler.Upload)
	wizard.DELETE("/account/documents", documentHandler.Reset)
	wizard.DELETE("/account/documents/:index", documentHandler.Remove)

	wizard.GET("/review", reviewHandler.Review)
	wizard.POST("/review", reviewHandler.Submit)
	wizard.GET("/submitted", reviewHandler.Submitted)

	wizard.GET("/account-setup", authorizationHandler.Entry)
	wizard.GET("/account-setup/:code", authorizationHandler.Application)
	wizard.POST("/account-setup/:code", authorizationHandler.Authorize)
	wizard.GET("/account-setup/:code/submitted", authorizationHandler.Submitted)

	return engine
}
