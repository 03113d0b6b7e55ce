package service

import (
	"context"
	"errors"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// AlertWatcher is the alert evaluation loop. Each cycle it snapshots the
// prices of every symbol carried by an active alert, evaluates the alerts
// against the snapshot, and fires each satisfied alert at most once.
type AlertWatcher interface {
	Start(ctx context.Context)
	Sweep(ctx context.Context) error
}

type alertWatcher struct {
	cfg            *config.Config
	logger         *logger.Logger
	alertService   AlertService
	marketDataRepo repository.MarketDataRepository
	eventRepo      repository.EventRepository
}

// NewAlertWatcher creates a new alert evaluation loop.
func NewAlertWatcher(cfg *config.Config, log *logger.Logger, alertService AlertService, marketDataRepo repository.MarketDataRepository, eventRepo repository.EventRepository) AlertWatcher {
	return &alertWatcher{
		cfg:            cfg,
		logger:         log,
		alertService:   alertService,
		marketDataRepo: marketDataRepo,
		eventRepo:      eventRepo,
	}
}

// Start runs the evaluation loop until the context is cancelled. A failed
// cycle delays the next one with exponential backoff; a successful cycle
// resets the delay to the configured poll interval.
func (w *alertWatcher) Start(ctx context.Context) {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = w.cfg.Watcher.BackoffInitial
	retry.MaxInterval = w.cfg.Watcher.BackoffMax
	retry.MaxElapsedTime = 0
	retry.Reset()

	timer := time.NewTimer(w.cfg.Watcher.PollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Alert watcher stopping")
			return
		case <-timer.C:
			sweepCtx, cancel := context.WithTimeout(ctx, w.cfg.Watcher.EvaluationTimeout)
			err := w.Sweep(sweepCtx)
			cancel()

			if err != nil {
				delay := retry.NextBackOff()
				w.logger.Error("Alert sweep failed",
					logger.ErrorField(err),
					logger.Field("retry_in", delay))
				timer.Reset(delay)
				continue
			}
			retry.Reset()
			timer.Reset(w.cfg.Watcher.PollInterval)
		}
	}
}

// Sweep runs one evaluation cycle. It returns an error only when the cycle
// could not run at all; a single alert failing to fire is logged and skipped
// so one bad alert cannot stall the rest.
func (w *alertWatcher) Sweep(ctx context.Context) error {
	alerts := w.alertService.ActiveAlerts()
	if len(alerts) == 0 {
		return nil
	}

	snapshot, err := w.marketDataRepo.GetSnapshot(ctx, distinctSymbols(alerts))
	if err != nil {
		return err
	}

	if err := w.eventRepo.RecordLastPrices(ctx, snapshot); err != nil {
		w.logger.Warn("Failed to record last prices", logger.ErrorField(err))
	}

	for _, alert := range alerts {
		price, ok := snapshot[alert.Symbol]
		if !ok {
			w.logger.DebugContext(ctx, "No price in snapshot, skipping alert",
				logger.StringField("symbol", alert.Symbol),
				logger.Field("alert_id", alert.ID))
			continue
		}
		if !alert.IsSatisfiedBy(price) {
			continue
		}
		w.fire(ctx, alert, price)
	}
	return nil
}

func (w *alertWatcher) fire(ctx context.Context, alert entity.Alert, observedPrice float64) {
	history, err := w.alertService.Trigger(ctx, &alert, observedPrice, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotActive) {
			w.logger.DebugContext(ctx, "Alert already triggered or deleted, skipping",
				logger.Field("alert_id", alert.ID))
			return
		}
		w.logger.Error("Failed to trigger alert",
			logger.ErrorField(err),
			logger.Field("alert_id", alert.ID))
		return
	}

	event := &dto.TriggeredEvent{
		AlertID:       alert.ID,
		UserID:        alert.UserID,
		Symbol:        alert.Symbol,
		TargetPrice:   alert.TargetPrice,
		ObservedPrice: observedPrice,
		Condition:     alert.Condition,
		TriggeredAt:   history.TriggeredAt,
	}
	if err := w.eventRepo.PublishTriggered(ctx, event); err != nil {
		// The alert is already deactivated and its history recorded; the
		// notification is the only thing lost.
		w.logger.Error("Failed to publish triggered event",
			logger.ErrorField(err),
			logger.Field("alert_id", alert.ID))
		return
	}

	w.logger.Info("Alert triggered",
		logger.Field("alert_id", alert.ID),
		logger.StringField("symbol", alert.Symbol),
		logger.Float64Field("target_price", alert.TargetPrice),
		logger.Float64Field("observed_price", observedPrice))
}

func distinctSymbols(alerts []entity.Alert) []string {
	seen := map[string]struct{}{}
	symbols := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		if _, ok := seen[alert.Symbol]; ok {
			continue
		}
		seen[alert.Symbol] = struct{}{}
		symbols = append(symbols, alert.Symbol)
	}
	return symbols
}
