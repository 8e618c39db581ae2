package main

import (
	"clipbook/internal/appointments/events"
	appointmenthandler "clipbook/internal/appointments/handler"
	appointmentrepo "clipbook/internal/appointments/repository"
	appointmentservice "clipbook/internal/appointments/service"
	appointmentvalidator "clipbook/internal/appointments/validator"
	barberhandler "clipbook/internal/barbers/handler"
	barberrepo "clipbook/internal/barbers/repository"
	barberservice "clipbook/internal/barbers/service"
	barbervalidator "clipbook/internal/barbers/validator"
	infohandler "clipbook/internal/info/handler"
	seedhandler "clipbook/internal/seed/handler"
	seedservice "clipbook/internal/seed/service"
	servicehandler "clipbook/internal/services/handler"
	servicerepo "clipbook/internal/services/repository"
	serviceservice "clipbook/internal/services/service"
	servicevalidator "clipbook/internal/services/validator"
	"clipbook/pkg/app"
	"clipbook/pkg/config"
	"clipbook/pkg/contracts"
	"clipbook/pkg/kafka"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Clipbook API service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, publisher)...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, appointment events disabled")
		return events.NewNopPublisher()
	}

	producer, err := kafka.NewProducer(&kafka.Config{
		Brokers: cfg.KafkaBrokers,
	}, cfg.KafkaAppointmentsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized",
		"topic", cfg.KafkaAppointmentsTopic,
		"brokers", cfg.KafkaBrokers,
	)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	barberRepo := barberrepo.NewMongoBarberRepository(cfg)
	barberSvc := barberservice.NewBarberService(
		barberRepo,
		barbervalidator.NewBarberValidator(cfg.Log),
		cfg,
	)

	serviceRepo := servicerepo.NewMongoServiceRepository(cfg)
	serviceSvc := serviceservice.NewServiceService(
		serviceRepo,
		servicevalidator.NewServiceValidator(cfg.Log),
		cfg,
	)

	appointmentSvc := appointmentservice.NewAppointmentService(
		appointmentrepo.NewMongoAppointmentRepository(cfg),
		appointmentrepo.NewSlotLockRepository(cfg),
		barberRepo,
		serviceRepo,
		appointmentvalidator.NewAppointmentValidator(cfg.Log),
		publisher,
		cfg,
	)

	seedSvc := seedservice.NewSeedService(barberSvc, serviceSvc, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		infohandler.NewInfoHandler(cfg.Log),
		barberhandler.NewBarberHandler(barberSvc, cfg.Log),
		servicehandler.NewServiceHandler(serviceSvc, cfg.Log),
		appointmenthandler.NewAppointmentHandler(appointmentSvc, cfg.Log),
		seedhandler.NewSeedHandler(seedSvc, cfg.Log),
	}
}
