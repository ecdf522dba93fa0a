package main

import (
	"log"
	"net/http"

	"github.com/Eursukkul/screening-service/config"
	"github.com/Eursukkul/screening-service/internal/consumer"
	"github.com/Eursukkul/screening-service/internal/handler"
	"github.com/Eursukkul/screening-service/internal/middleware"
	"github.com/Eursukkul/screening-service/internal/repository"
	"github.com/Eursukkul/screening-service/internal/service"
	"github.com/Eursukkul/screening-service/pkg/database"
	"github.com/Eursukkul/screening-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	store := repository.NewStore(db)

	// Left nil when messaging is disabled so lifecycle events are skipped.
	var publisher service.EventPublisher
	if cfg.RabbitEnabled {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
	}

	bookingSvc := service.NewBookingService(store, publisher)
	whitelistSvc := service.NewWhitelistService(store)

	// RabbitMQ consumer: booking requests from the telephony side
	if cfg.RabbitEnabled {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewBookingRequestConsumer(bookingSvc).Start(msgs)
	}

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "screening-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewWhitelistHandler(whitelistSvc).RegisterRoutes(e)

	log.Printf("Screening Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
