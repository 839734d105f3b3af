package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	migrateDB(gormDB)

	registry := buildCarrierRegistry(configs)
	publisher := mustConnectPublisher(configs, logger)
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, registry, publisher)

	jobManager := jobs.NewJobManager(
		app.CreateGetDelayedShipmentsQueryHandler(),
		app.CreateGetActiveShipmentsQueryHandler(),
		app.CreateTrackShipmentQueryHandler(),
		app.CreateUpdateShipmentStatusCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		RedisURL:        goDotEnvVariable("REDIS_URL"),
		UpsAPIBaseURL:   goDotEnvVariable("UPS_API_BASE_URL"),
		UpsAPIKey:       goDotEnvVariable("UPS_API_KEY"),
		FedexAPIBaseURL: goDotEnvVariable("FEDEX_API_BASE_URL"),
		FedexAPIKey:     goDotEnvVariable("FEDEX_API_KEY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusLogDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.AdminNoteDTO{},
		&ledgerrepo.DealerBalanceDTO{},
		&ledgerrepo.TransactionDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func buildCarrierRegistry(configs cmd.Config) *carrier.Registry {
	registry := carrier.NewRegistry()

	if configs.UpsAPIBaseURL != "" {
		ups, err := carrier.NewHTTPGateway(configs.UpsAPIBaseURL, configs.UpsAPIKey)
		if err != nil {
			log.Fatalf("Failed to create ups gateway: %v", err)
		}
		registry.Register("ups", ups)
	}

	if configs.FedexAPIBaseURL != "" {
		fedex, err := carrier.NewHTTPGateway(configs.FedexAPIBaseURL, configs.FedexAPIKey)
		if err != nil {
			log.Fatalf("Failed to create fedex gateway: %v", err)
		}
		registry.Register("fedex", fedex)
	}

	local, err := carrier.NewManualGateway("LOCAL", 48*time.Hour)
	if err != nil {
		log.Fatalf("Failed to create local gateway: %v", err)
	}
	registry.Register("local-courier", local)

	return registry
}

func mustConnectPublisher(configs cmd.Config, logger *slog.Logger) *notifier.RedisPublisher {
	publisher, err := notifier.NewRedisPublisher(context.Background(), configs.RedisURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	return publisher
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreatePlaceDealerOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateUpdateProductionStatusCommandHandler(),
		app.CreateCreateShipmentCommandHandler(),
		app.CreateUpdateShipmentStatusCommandHandler(),
		app.CreateCancelShipmentCommandHandler(),
		app.CreateAddCreditCommandHandler(),
		app.CreateUpdateCreditLimitCommandHandler(),
		app.CreateGetBalanceSummaryQueryHandler(),
		app.CreateCheckCreditQueryHandler(),
		app.CreateGetDelayedShipmentsQueryHandler(),
		app.CreateTrackShipmentQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
