package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "clipbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultCORSAllowedOrigins = "*"

	DefaultKafkaAppointmentsTopic = "clipbook.appointments"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL = 10 * time.Second

	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "20:00"
	DefaultSlotMinutes  = 30

	MinSlotMinutes = 10
	MaxSlotMinutes = 240

	DefaultPaginationLimit = 100

	DefaultLogLevel = "info"
)

var DefaultWorkingDays = []string{"mon", "tue", "wed", "thu", "fri", "sat"}
