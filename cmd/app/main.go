package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"tracker/cmd"
	trackerhttp "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/postgres/historyrepo"
	"tracker/internal/adapters/out/postgres/parcelrepo"
	"tracker/internal/adapters/out/postgres/statusrepo"
	"tracker/internal/jobs"

	"log/slog"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustConnectDB(configs)
	mustMigrate(db)

	app := cmd.NewCompositionRoot(configs, db)

	jobManager := jobs.NewJobManager(
		app.CreateBackfillLocationsCommandHandler(),
		configs.BackfillBatchSize,
		configs.BackfillSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		GeocoderBaseURL:   goDotEnvVariable("GEOCODER_BASE_URL"),
		GeocoderTimeout:   durationVariable("GEOCODER_TIMEOUT_SECONDS"),
		BackfillBatchSize: intVariable("BACKFILL_BATCH_SIZE"),
		BackfillSchedule:  goDotEnvVariable("BACKFILL_SCHEDULE"),
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

func intVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid integer value for %s", key)
	}
	return value
}

func durationVariable(key string) time.Duration {
	seconds := intVariable(key)
	return time.Duration(seconds) * time.Second
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&statusrepo.StatusDefinitionDTO{},
		&historyrepo.HistoryEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seedStatusDefinitions(db)
}

// seedStatusDefinitions ensures the status vocabulary exists. Existing rows
// are left untouched so operators can adjust descriptions.
func seedStatusDefinitions(db *gorm.DB) {
	definitions := []statusrepo.StatusDefinitionDTO{
		{ID: uuid.New(), Name: "Sent", Description: "The package has been submitted for delivery"},
		{ID: uuid.New(), Name: "In Delivery", Description: "The package is on its way"},
		{ID: uuid.New(), Name: "Delivered", Description: "The package has reached its recipient"},
	}

	for _, definition := range definitions {
		err := db.Where(statusrepo.StatusDefinitionDTO{Name: definition.Name}).
			FirstOrCreate(&definition).Error
		if err != nil {
			log.Fatalf("Failed to seed status definition %s: %v", definition.Name, err)
		}
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := trackerhttp.NewServer(
		app.CreateUpdateParcelStatusCommandHandler(),
		app.CreateGetParcelQueryHandler(),
		app.CreateGetCourierParcelsQueryHandler(),
	)
	trackerhttp.RegisterRoutes(e, server)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
