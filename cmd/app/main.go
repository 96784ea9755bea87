package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"manufacturing/cmd"
	httpadapter "manufacturing/internal/adapters/in/http"
	"manufacturing/internal/adapters/out/postgres"
	"manufacturing/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfig(logger)

	db, err := openDatabase(config)
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, db, logger)

	jobManager := jobs.NewJobManager(root.CreateAutoAssignDesignJobsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort)
}

func getConfig(logger *slog.Logger) cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file loaded, using process environment")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
	}
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the repositories map onto the domain error taxonomy.
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateCreateDesignJobCommandHandler(),
		root.CreateAssignDesignJobCommandHandler(),
		root.CreateSubmitDesignForReviewCommandHandler(),
		root.CreateReviewDesignCommandHandler(),
		root.CreateBulkAssignDesignJobsCommandHandler(),
		root.CreateCreateWorkOrderCommandHandler(),
		root.CreateBulkGenerateWorkOrdersCommandHandler(),
		root.CreateUpdateWorkOrderStatusCommandHandler(),
		root.CreateAssignManufacturerCommandHandler(),
		root.CreateReportProductionDelayCommandHandler(),
		root.CreateGeneratePurchaseOrdersCommandHandler(),
		root.CreateApprovePurchaseOrderCommandHandler(),
		root.CreateReceivePurchaseOrderCommandHandler(),
		root.CreateGetAgentCapacityQueryHandler(),
		root.CreateGetAuditTrailQueryHandler(),
		root.CreateGetOpenWorkOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
