package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nathan-pruitt/openhouse/libs/config"
	"github.com/nathan-pruitt/openhouse/libs/db"
	"github.com/nathan-pruitt/openhouse/libs/eventbus"
	"github.com/nathan-pruitt/openhouse/libs/httpx"
	"github.com/nathan-pruitt/openhouse/libs/kafkax"
	"github.com/nathan-pruitt/openhouse/libs/otelx"
	"github.com/nathan-pruitt/openhouse/libs/runtime"
	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/gcal"
	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/handlers"
	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/storage"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

func main() {
	service := config.String("SERVICE_NAME", "calendar-service")
	port, err := config.Port("PORT", "8086")
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

	repo := storage.NewRepository(pool)
	inboxRepo := eventbus.NewInboxRepository(pool)

	oauthCfg := &oauth2.Config{
		ClientID:     config.String("GOOGLE_CLIENT_ID", ""),
		ClientSecret: config.String("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  config.String("GOOGLE_REDIRECT_URL", ""),
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}

	brokers := config.String("KAFKA_BROKERS", "")
	groupID := config.String("KAFKA_GROUP_ID", "calendar-service")

	type bookedPayload struct {
		ShowingID       string `json:"showing_id"`
		AgentID         string `json:"agent_id"`
		ListingID       string `json:"listing_id"`
		VisitorName     string `json:"visitor_name"`
		StartTime       string `json:"start_time"`
		DurationMinutes int    `json:"duration_minutes"`
	}

	bookedConsumer := eventbus.NewConsumer(logger, inboxRepo, eventbus.ConsumerConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   config.String("KAFKA_BOOKED_TOPIC", eventbus.EventShowingBooked),
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload bookedPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid booked payload", "err", err)
			return nil
		}
		if payload.ShowingID == "" || payload.AgentID == "" || payload.StartTime == "" || payload.DurationMinutes <= 0 {
			logger.Error("missing booked fields")
			return nil
		}
		startTime, err := time.Parse(time.RFC3339, payload.StartTime)
		if err != nil {
			logger.Error("invalid start_time", "err", err)
			return nil
		}

		if err := repo.UpsertEvent(ctx, storage.Event{
			ShowingID:       payload.ShowingID,
			AgentID:         payload.AgentID,
			ListingID:       payload.ListingID,
			VisitorName:     payload.VisitorName,
			StartTime:       startTime.UTC(),
			DurationMinutes: payload.DurationMinutes,
		}); err != nil {
			logger.Error("failed to mirror showing", "err", err)
			return err
		}
		logger.Info("showing mirrored", "showing_id", payload.ShowingID, "agent_id", payload.AgentID)
		return nil
	})
	go bookedConsumer.Run(ctx)

	cancelConsumer := eventbus.NewConsumer(logger, inboxRepo, eventbus.ConsumerConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   config.String("KAFKA_CANCELLED_TOPIC", eventbus.EventShowingCancelled),
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload struct {
			ShowingID string `json:"showing_id"`
		}
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid cancellation payload", "err", err)
			return nil
		}
		if payload.ShowingID == "" {
			return nil
		}
		if err := repo.MarkCancelled(ctx, payload.ShowingID); err != nil {
			logger.Error("failed to mark cancelled", "err", err)
			return err
		}
		return nil
	})
	go cancelConsumer.Run(ctx)

	syncer := gcal.NewSyncer(repo, oauthCfg, logger, gcal.Config{
		Interval:   30 * time.Second,
		BatchSize:  50,
		CalendarID: config.String("GOOGLE_CALENDAR_ID", "primary"),
	})
	go syncer.Run(ctx)

	h := handlers.New(repo, oauthCfg, logger)

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	)
	mux.HandleFunc("/api/v1/calendar/feed", h.Feed)
	mux.HandleFunc("/api/v1/calendar/feed-token", h.FeedToken)
	mux.HandleFunc("/api/v1/calendar/google/auth-url", h.GoogleAuthURL)
	mux.HandleFunc("/api/v1/calendar/google/callback", h.GoogleCallback)

	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "calendar")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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
