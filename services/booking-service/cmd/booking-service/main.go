package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nathan-pruitt/openhouse/libs/config"
	"github.com/nathan-pruitt/openhouse/libs/db"
	"github.com/nathan-pruitt/openhouse/libs/eventbus"
	"github.com/nathan-pruitt/openhouse/libs/httpx"
	"github.com/nathan-pruitt/openhouse/libs/kafkax"
	"github.com/nathan-pruitt/openhouse/libs/otelx"
	"github.com/nathan-pruitt/openhouse/libs/runtime"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/agentcfg"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/handlers"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/policy"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/storage"
)

func parseReminderOffsets(raw string, logger *slog.Logger) []time.Duration {
	var offsets []time.Duration
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mins, err := strconv.Atoi(part)
		if err != nil || mins <= 0 {
			logger.Warn("invalid reminder offset", "value", part)
			continue
		}
		offsets = append(offsets, time.Duration(mins)*time.Minute)
	}
	if len(offsets) == 0 {
		offsets = []time.Duration{24 * time.Hour}
	}
	return offsets
}

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	repo := storage.NewShowingRepository(pool)
	outboxRepo := eventbus.NewOutboxRepository(pool)
	offsets := parseReminderOffsets(config.String("REMINDER_OFFSETS_MINUTES", "1440,60"), logger)
	policyProvider, err := policy.NewAgentPolicyProvider(logger, offsets, config.String("AGENT_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("policy provider init failed", "err", err)
		policyProvider = policy.NewStaticProvider(offsets)
	}
	agentProvider, err := agentcfg.NewProvider(config.String("AGENT_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("agent config provider init failed; using fallback", "err", err)
		agentProvider = nil
	}
	outboxPublisher := eventbus.NewPublisher(pool, outboxRepo, logger, eventbus.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := eventbus.NewInboxRepository(pool)
	startConsumer := func(topic string) {
		if strings.TrimSpace(topic) == "" {
			return
		}
		consumerCfg := eventbus.ConsumerConfig{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "booking-service"),
			Topic:   topic,
		}
		eventConsumer := eventbus.NewConsumer(logger, inboxRepo, consumerCfg, func(ctx context.Context, msg kafka.Message) error {
			// Activated and canceled events carry the same limit fields;
			// booking enforces entitlements from this local cache.
			var payload struct {
				AgentID           string `json:"agent_id"`
				Tier              string `json:"tier"`
				MaxListings       int    `json:"max_listings"`
				MaxWeeklyShowings int    `json:"max_weekly_showings"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if payload.AgentID == "" || payload.Tier == "" {
				logger.Error("missing required event fields", "topic", msg.Topic)
				return nil
			}

			tx, err := pool.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			if err := repo.UpsertAgentEntitlements(ctx, tx, storage.AgentEntitlements{
				AgentID:           payload.AgentID,
				Tier:              payload.Tier,
				MaxListings:       payload.MaxListings,
				MaxWeeklyShowings: payload.MaxWeeklyShowings,
			}); err != nil {
				return err
			}
			return tx.Commit(ctx)
		})
		go eventConsumer.Run(ctx)
	}

	startConsumer(config.String("KAFKA_CONSUME_TOPIC", eventbus.EventSubscriptionActivated))
	startConsumer(config.String("KAFKA_CONSUME_TOPIC_2", eventbus.EventSubscriptionCanceled))
	showingHandler := handlers.NewShowingHandler(repo, outboxRepo, logger, policyProvider, agentProvider, offsets)

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	setupEntitlementsRoutes(ctx, mux, logger)
	mux.HandleFunc("/api/v1/public/slots", showingHandler.Slots)
	mux.HandleFunc("/api/v1/public/book", showingHandler.Book)
	mux.HandleFunc("/api/v1/showings", showingHandler.List)
	mux.HandleFunc("/api/v1/showings/cancel", showingHandler.Cancel)
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
