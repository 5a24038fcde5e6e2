// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-retry"

	"technet-workers/internal/catalog"
	"technet-workers/internal/common/aws"
	"technet-workers/internal/common/camunda"
	"technet-workers/internal/common/config"
	"technet-workers/internal/common/database"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/common/observability"
	"technet-workers/internal/common/validation"
	"technet-workers/internal/network"
	"technet-workers/internal/sessions"
	"technet-workers/internal/settings"
	"technet-workers/pkg/registry"

	sa "technet-workers/internal/workers/application/submit-application"
	sve "technet-workers/internal/workers/communication/send-verification-email"
	bc "technet-workers/internal/workers/listing/browse-companies"
	sj "technet-workers/internal/workers/listing/search-jobs"
	tfc "technet-workers/internal/workers/listing/toggle-favorite-company"
	uc "technet-workers/internal/workers/network/update-connection"
	ss "technet-workers/internal/workers/settings/sync-settings"
	wa "technet-workers/internal/workers/wizard/wizard-action"
)

// Config keys for workers that serve several task types.
const (
	wizardWorkerKey   = "wizard-action"
	settingsWorkerKey = "sync-settings"
	networkWorkerKey  = "update-connection"
)

// retryWithBackoff retries operation with exponential backoff, logging every
// failed attempt.
func retryWithBackoff(ctx context.Context, operation func(context.Context) error, maxRetries uint64, initialDelay time.Duration, log logger.Logger, operationName string) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.WithCappedDuration(30*time.Second, retry.NewExponential(initialDelay)))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := operation(ctx); err != nil {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":      err.Error(),
				"attempt":    attempt,
				"maxRetries": maxRetries,
			})
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s failed after %d attempts: %w", operationName, attempt, err)
	}
	return nil
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	log.Info("starting worker manager", map[string]interface{}{
		"catalogSource": cfg.Listing.Source,
	})

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "observability init failed", err)
	}
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		zeebe, err = camunda.NewClient(ctx, cfg.Camunda)
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		fatal(log, "zeebe client failed after retries", err)
	}
	log.Info("zeebe client connected", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	// --- Backends ---
	var conns *database.Connections
	err = retryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		conns, err = database.Open(ctx, cfg)
		return err
	}, 15, 2*time.Second, log, "database connections")
	if err != nil {
		fatal(log, "database connections failed after retries", err)
	}
	defer conns.Close()
	log.Info("database connections ready", nil)

	// --- Schema validation ---
	reg, err := registry.Default()
	if err != nil {
		fatal(log, "activity registry load failed", err)
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		fatal(log, "schema validator init failed", err)
	}

	runtime := &camunda.Runtime{
		Validator: validator,
		Errors:    apperrors.NewErrorHandler(log),
		Obs:       obs,
		Logger:    log,
	}

	source, err := buildCatalog(cfg, conns, log)
	if err != nil {
		fatal(log, "catalog init failed", err)
	}

	var workers []*camunda.CamundaWorker
	start := func(taskType, key string, handler camunda.JobHandler) {
		if w := runtime.Start(zeebe.Zeebe(), taskType, config.GetWorkerConfig(cfg, key), handler); w != nil {
			workers = append(workers, w)
		}
	}
	timeout := func(key string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, key).Timeout)
	}

	// --- Listing ---
	{
		c := sj.LoadConfig()
		c.Timeout = timeout(sj.TaskType)
		c.DefaultPageSize = cfg.Listing.DefaultPageSize
		start(sj.TaskType, sj.TaskType, sj.NewHandler(c, source, log))
	}
	{
		c := bc.LoadConfig()
		c.Timeout = timeout(bc.TaskType)
		c.DefaultPageSize = cfg.Listing.DefaultPageSize
		start(bc.TaskType, bc.TaskType, bc.NewHandler(c, source, log))
	}

	{
		c := tfc.LoadConfig()
		c.Timeout = timeout(tfc.TaskType)
		favorites := network.NewFavorites(conns.Redis.Client, cfg.Network.FavoritesPrefix)
		start(tfc.TaskType, tfc.TaskType, tfc.NewHandler(c, favorites, log))
	}

	// --- Wizard ---
	{
		c := wa.LoadConfig()
		c.Timeout = timeout(wizardWorkerKey)
		store := sessions.NewRedisStore(conns.Redis.Client, cfg.Wizard.SessionDuration())
		handler := wa.NewHandler(c, store, log)
		for _, taskType := range wa.TaskTypes {
			start(taskType, wizardWorkerKey, handler)
		}
	}

	// --- Application ---
	{
		c := sa.LoadConfig()
		c.Timeout = timeout(sa.TaskType)
		submitter := sa.NewPostgresSubmitter(conns.Postgres.DB, log)
		start(sa.TaskType, sa.TaskType, sa.NewHandler(c, submitter, log))
	}

	// --- Verification email ---
	if cfg.Notifications.Email.Enabled {
		sender, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail)
		if err != nil {
			fatal(log, "ses client init failed", err)
		}
		c := sve.LoadConfig()
		c.Timeout = timeout(sve.TaskType)
		if cfg.Notifications.Email.VerifyURL != "" {
			c.VerifyURL = cfg.Notifications.Email.VerifyURL
		}
		c.MaxSends = cfg.Notifications.Email.MaxSends
		c.Window = time.Duration(cfg.Notifications.Email.WindowHours) * time.Hour
		counter := sve.NewSendCounter(conns.Redis.Client, c.Window)
		start(sve.TaskType, sve.TaskType, sve.NewHandler(c, sender, counter, log))
	} else {
		log.Info("email notifications disabled", map[string]interface{}{"taskType": sve.TaskType})
	}

	// --- Settings ---
	{
		c := ss.LoadConfig()
		c.Timeout = timeout(settingsWorkerKey)
		store := settings.NewStore(conns.Redis.Client, cfg.Settings.KeyPrefix, log)
		handler := ss.NewHandler(c, store, log)
		start(ss.TaskTypeLoad, settingsWorkerKey, handler)
		start(ss.TaskTypeSave, settingsWorkerKey, handler)
	}

	// --- Network ---
	{
		c := uc.LoadConfig()
		c.Timeout = timeout(networkWorkerKey)
		store := network.NewStore(conns.Redis.Client, cfg.Network.KeyPrefix, log)
		handler := uc.NewHandler(c, store, log)
		for _, taskType := range uc.TaskTypes {
			start(taskType, networkWorkerKey, handler)
		}
	}

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           newMux(cfg, conns, zeebe),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("error closing zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("worker manager stopped", nil)
}

// buildCatalog picks the configured backend and puts the Redis read-through
// cache in front of it when a TTL is set.
func buildCatalog(cfg *config.Config, conns *database.Connections, log logger.Logger) (catalog.Source, error) {
	var source catalog.Source
	switch cfg.Listing.Source {
	case config.SourceElasticsearch:
		if conns.Elasticsearch == nil {
			return nil, errors.New("elasticsearch catalog selected but no client is open")
		}
		source = catalog.NewElasticsearchSource(conns.Elasticsearch.Client,
			cfg.Listing.JobsIndex, cfg.Listing.CompaniesIndex, cfg.Listing.SearchSize)
	default:
		source = catalog.NewPostgresSource(conns.Postgres.DB)
	}

	if ttl := cfg.Listing.CacheDuration(); ttl > 0 {
		source = catalog.NewCachedSource(source, conns.Redis.Client, ttl, log)
	}
	return source, nil
}

func newMux(cfg *config.Config, conns *database.Connections, zeebe *camunda.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := conns.Ping(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
		if err := zeebe.HealthCheck(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	if cfg.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status, reason string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if reason != "" {
		body["reason"] = reason
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
