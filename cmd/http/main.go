package main

import (
	"context"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/delivery/http/controllers"
	"hospital-lab-service/internal/app/delivery/http/handlers"
	"hospital-lab-service/internal/app/delivery/http/middlewares"
	"hospital-lab-service/internal/app/delivery/http/routers"
	"hospital-lab-service/internal/app/drivers/database"
	"hospital-lab-service/internal/app/drivers/logger"
	"hospital-lab-service/internal/app/drivers/messaging"
	"hospital-lab-service/internal/app/drivers/storage"
	"hospital-lab-service/internal/app/services/core/appointments"
	"hospital-lab-service/internal/app/services/core/assignments"
	"hospital-lab-service/internal/app/services/core/guard"
	"hospital-lab-service/internal/app/services/core/identity"
	labReports "hospital-lab-service/internal/app/services/core/lab_reports"
	labTests "hospital-lab-service/internal/app/services/core/lab_tests"
	"hospital-lab-service/internal/app/services/core/performance"
	"hospital-lab-service/internal/app/services/core/profiles"
	"hospital-lab-service/internal/app/services/core/roles"
	"hospital-lab-service/internal/app/services/core/session"
	"hospital-lab-service/internal/app/services/shared/labevents"
	"hospital-lab-service/internal/app/services/shared/locker"
	"hospital-lab-service/internal/app/services/shared/redis"
	"hospital-lab-service/internal/app/services/shared/renderer"
	minioStorage "hospital-lab-service/internal/app/services/shared/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	// Indexes
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	createdIndexes, err := database.EnsureIndexes(indexCtx, bootstrap.MongoDB)
	if err != nil {
		return err
	}
	for collection, names := range createdIndexes {
		bootstrap.Logger.Info("Indexes ensured",
			zap.String("collection", collection),
			zap.Strings("indexes", names),
		)
	}

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	objectStorage := minioStorage.NewMinioStorage(bootstrap.Minio)
	reportRenderer := renderer.NewJSONReportRenderer()
	eventPublisher, err := labevents.NewLabEventPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.RabbitMQ.LabEventsQueue, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Session & RBAC
	sessionService := session.NewSessionService(redisRepository)
	enforcer, err := roles.NewEnforcer(bootstrap.InternalConfig.RBAC.ModelPath, bootstrap.InternalConfig.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	roleUsecase := roles.NewCasbinRoleUsecase(enforcer)

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig, sessionService, roleUsecase)

	// Repositories
	doctorRepository := profiles.NewDoctorMongoRepository(bootstrap.MongoDB)
	patientRepository := profiles.NewPatientMongoRepository(bootstrap.MongoDB)
	labTechRepository := profiles.NewLabTechMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	labTestRepository := labTests.NewLabTestMongoRepository(bootstrap.MongoDB)
	labReportRepository := labReports.NewLabReportMongoRepository(bootstrap.MongoDB)
	assignmentAuditRepository := assignments.NewAssignmentAuditMongoRepository(bootstrap.MongoDB)

	// Identity & Guard
	identityResolver := identity.NewIdentityResolver(doctorRepository, patientRepository, labTechRepository, bootstrap.Logger)
	relationshipGuard := guard.NewRelationshipGuard(appointmentRepository, bootstrap.Logger)

	// Lab Test
	labTestUsecase := labTests.NewLabTestUsecase(
		labTestRepository,
		labTechRepository,
		patientRepository,
		identityResolver,
		relationshipGuard,
		eventPublisher,
		bootstrap.Logger,
	)
	labTestController := controllers.NewLabTestController(bootstrap.Logger, labTestUsecase)

	// Assignment
	assignmentUsecase := assignments.NewAssignmentUsecase(
		labTestUsecase,
		labTestRepository,
		labTechRepository,
		assignmentAuditRepository,
		identityResolver,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	assignmentController := controllers.NewAssignmentController(bootstrap.Logger, assignmentUsecase)

	// Lab Report
	labReportUsecase := labReports.NewLabReportUsecase(
		labReportRepository,
		labTestUsecase,
		labTechRepository,
		doctorRepository,
		patientRepository,
		identityResolver,
		reportRenderer,
		objectStorage,
		lockService,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	labReportController := controllers.NewLabReportController(bootstrap.Logger, labReportUsecase)

	// Performance
	performanceUsecase := performance.NewPerformanceUsecase(
		labTestRepository,
		labTechRepository,
		identityResolver,
		relationshipGuard,
		bootstrap.Logger,
	)
	performanceController := controllers.NewPerformanceController(bootstrap.Logger, performanceUsecase)

	// Roles
	roleHandler := handlers.NewRoleHandler(bootstrap.Logger, roleUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewareInstance,
		labTestController,
		assignmentController,
		labReportController,
		performanceController,
		roleHandler,
	)
	return nil
}
