package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/db"
	"github.com/brightops/taskcycle/internal/notify"
	"github.com/brightops/taskcycle/internal/redis"
	"github.com/brightops/taskcycle/internal/schedule"
)

func main() {
	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(db.DB)

	// de-dup markers live in Redis when configured; otherwise in-process
	var markers schedule.MarkerStore = schedule.NewMemoryMarkers()
	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
		markers = redis.Markers{}
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set, using in-process reminder markers")
	}

	loc, err := time.LoadLocation(env.Timezone)
	if err != nil || env.Timezone == "" {
		loc = nil
	}
	cal := schedule.NewCalendar(store, loc)
	oracle := schedule.NewLeaveOracle(store, cal)
	calc := schedule.NewCalculator(cal, oracle)
	reconciler := schedule.NewReconciler(store, calc)

	sink := InitSink(env)
	notifier := schedule.NewNotifier(store, sink, markers, cal)

	// drive the periodic jobs in-process as well as via /api/cron
	go func() {
		ticker := time.NewTicker(env.ReconcileInterval)
		defer ticker.Stop()
		for range ticker.C {
			reconciler.ReconcileAll()
			if _, err := notifier.Run(context.Background()); err != nil {
				log.Error().Err(err).Msg("scheduled notification run failed")
			}
		}
	}()

	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, env, store, cal, reconciler, notifier)

	// start
	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// InitSink selects the configured reminder delivery backend
func InitSink(env Environment) schedule.Sink {
	if env.MQTTBrokerURL != "" {
		sink, err := notify.NewMQTTSink(env.MQTTBrokerURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize MQTT sink")
		}
		return sink
	}

	log.Info().Msg("using log reminder sink")
	return notify.LogSink{}
}
