package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		BroadcastSweepInterval  time.Duration
		RatingRecomputeInterval time.Duration
	}

	Broadcast struct {
		DefaultTTL         time.Duration
		DefaultRadiusKm    float64
		MaxAttempts        int
		RadiusGrowthFactor float64
		RadiusCapKm        float64
	}

	Rating struct {
		TriggerPolicy string // on_completion | batch
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		DriverTopic     string
		AdminTopic      string
		StatusTopic     string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		JobStatusChanged JobStatusChanged
	}

	JobStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks     Tasks
		Broadcast Broadcast
		Rating    Rating
		Server    HTTPServer
		Database  Database
		Kafka     Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	sweepInterval, err := osGetEnvDuration("BACKGROUND_BROADCAST_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ratingInterval, err := osGetEnvDuration("BACKGROUND_RATING_RECOMPUTE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	broadcastTTL, err := osGetEnvDuration("BROADCAST_DEFAULT_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	broadcastRadius, err := osGetFloat("BROADCAST_DEFAULT_RADIUS_KM")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	broadcastMaxAttempts, err := osGetInt("BROADCAST_MAX_ATTEMPTS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	radiusGrowthFactor, err := osGetFloat("BROADCAST_RADIUS_GROWTH_FACTOR")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	radiusCap, err := osGetFloat("BROADCAST_RADIUS_CAP_KM")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	jobStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_JOB_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			BroadcastSweepInterval:  sweepInterval,
			RatingRecomputeInterval: ratingInterval,
		},
		Broadcast: Broadcast{
			DefaultTTL:         broadcastTTL,
			DefaultRadiusKm:    broadcastRadius,
			MaxAttempts:        broadcastMaxAttempts,
			RadiusGrowthFactor: radiusGrowthFactor,
			RadiusCapKm:        radiusCap,
		},
		Rating: Rating{
			TriggerPolicy: os.Getenv("RATING_TRIGGER_POLICY"),
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			DriverTopic:     os.Getenv("KAFKA_DRIVER_TOPIC"),
			AdminTopic:      os.Getenv("KAFKA_ADMIN_TOPIC"),
			StatusTopic:     os.Getenv("KAFKA_JOB_STATUS_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				JobStatusChanged: JobStatusChanged{
					ProcessTimeout: jobStatusChangedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.BroadcastSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_BROADCAST_SWEEP_INTERVAL is required")
	}
	if cfg.Tasks.RatingRecomputeInterval == time.Duration(0) {
		return errors.New("BACKGROUND_RATING_RECOMPUTE_INTERVAL is required")
	}

	if cfg.Broadcast.DefaultTTL == time.Duration(0) {
		return errors.New("BROADCAST_DEFAULT_TTL is required")
	}
	if cfg.Broadcast.MaxAttempts == 0 {
		return errors.New("BROADCAST_MAX_ATTEMPTS is required")
	}
	if cfg.Broadcast.RadiusGrowthFactor == 0 {
		return errors.New("BROADCAST_RADIUS_GROWTH_FACTOR is required")
	}

	if cfg.Rating.TriggerPolicy == "" {
		return errors.New("RATING_TRIGGER_POLICY is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.DriverTopic == "" {
		return errors.New("KAFKA_DRIVER_TOPIC is required")
	}
	if cfg.Kafka.AdminTopic == "" {
		return errors.New("KAFKA_ADMIN_TOPIC is required")
	}
	if cfg.Kafka.StatusTopic == "" {
		return errors.New("KAFKA_JOB_STATUS_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.JobStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_JOB_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
