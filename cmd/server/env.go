package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	CronSecret     string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	Timezone          string
	MQTTBrokerURL     string
	ReconcileInterval time.Duration
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		CronSecret:    os.Getenv("CRON_SECRET"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		Timezone:      os.Getenv("SCHEDULER_TIMEZONE"),
		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
	}

	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}

	env.ReconcileInterval = 15 * time.Minute
	if raw := os.Getenv("RECONCILE_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid RECONCILE_INTERVAL")
		}
		env.ReconcileInterval = interval
	}

	// Basic validation
	if env.DatabaseURL == "" || env.SecretKey == "" || env.ServerAddress == "" || env.CronSecret == "" {
		log.Fatal().Msg("Missing required environment variables")
	}

	return env
}
