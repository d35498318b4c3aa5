package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindhub-service/internal/app/config"
	"mindhub-service/internal/app/delivery/http/middlewares"
	"mindhub-service/internal/app/delivery/http/routers"
	"mindhub-service/internal/app/drivers/database"
	"mindhub-service/internal/app/drivers/logger"
	"mindhub-service/internal/app/drivers/messaging"
	"mindhub-service/internal/app/drivers/storage"
	"mindhub-service/internal/app/services/core/assessments"
	"mindhub-service/internal/app/services/core/instruments"
	"mindhub-service/internal/app/services/shared/eventqueue"
	"mindhub-service/internal/app/services/shared/normative"
	"mindhub-service/internal/app/services/shared/redis"
	minioStorage "mindhub-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogrus(internalConfig)
	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	normativeClient := normative.NewNormativeClient(bootstrap.InternalConfig)
	snapshotStorage := minioStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig, bootstrap.Logger)

	eventPublisher, err := eventqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger)
	if err != nil {
		bootstrap.Logger.Fatal("Failed to initialize event publisher", zap.Error(err))
	}

	// Middlewares
	middlewares := middlewares.New(bootstrap.Logger, bootstrap.InternalConfig)

	// Instruments
	instrumentMongoRepository := instruments.NewInstrumentMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	instrumentUsecase := instruments.NewInstrumentUsecase(
		instrumentMongoRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	instrumentController := instruments.NewInstrumentController(bootstrap.Logger, instrumentUsecase)

	// Assessments
	assessmentMongoRepository := assessments.NewAssessmentMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	assessmentUsecase := assessments.NewAssessmentUsecase(
		assessmentMongoRepository,
		instrumentUsecase,
		normativeClient,
		eventPublisher,
		snapshotStorage,
		bootstrap.Logger,
	)
	assessmentController := assessments.NewAssessmentController(bootstrap.Logger, assessmentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		instrumentController,
		assessmentController,
	)
}
