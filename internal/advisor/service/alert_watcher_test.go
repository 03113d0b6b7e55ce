package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAlertRepo struct {
	mu         sync.Mutex
	alerts     map[uint]*entity.Alert
	histories  []entity.AlertHistory
	nextID     uint
	triggerErr map[uint]error
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{
		alerts:     map[uint]*entity.Alert{},
		triggerErr: map[uint]error{},
	}
}

func (r *fakeAlertRepo) Create(_ context.Context, alert *entity.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	alert.ID = r.nextID
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id uint) (*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *alert
	return &copied, nil
}

func (r *fakeAlertRepo) ListByUser(_ context.Context, userID uint) ([]entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Alert
	for _, alert := range r.alerts {
		if alert.UserID == userID {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) FindActive(_ context.Context) ([]entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Alert
	for _, alert := range r.alerts {
		if alert.IsActive {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) Update(_ context.Context, id uint, update entity.AlertUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if update.TargetPrice != nil {
		alert.TargetPrice = *update.TargetPrice
	}
	if update.Condition != nil {
		alert.Condition = *update.Condition
	}
	if update.IsActive != nil {
		alert.IsActive = *update.IsActive
	}
	return nil
}

func (r *fakeAlertRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.alerts, id)
	return nil
}

func (r *fakeAlertRepo) Trigger(_ context.Context, alert *entity.Alert, observedPrice float64, at time.Time) (*entity.AlertHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.triggerErr[alert.ID]; err != nil {
		return nil, err
	}
	stored, ok := r.alerts[alert.ID]
	if !ok || !stored.IsActive {
		return nil, repository.ErrAlertNotActive
	}
	stored.IsActive = false
	stored.TriggeredAt = &at

	history := entity.AlertHistory{
		AlertID:       alert.ID,
		Symbol:        alert.Symbol,
		TargetPrice:   alert.TargetPrice,
		ObservedPrice: observedPrice,
		TriggeredAt:   at,
	}
	r.histories = append(r.histories, history)

	alert.IsActive = false
	alert.TriggeredAt = &at
	return &history, nil
}

type fakeMarketDataRepo struct {
	snapshot dto.PriceSnapshot
	err      error
	calls    int
}

func (r *fakeMarketDataRepo) GetStockData(context.Context, dto.GetStockDataParam) (*dto.StockData, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeMarketDataRepo) GetSnapshot(context.Context, []string) (dto.PriceSnapshot, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.snapshot, nil
}

type fakeEventRepo struct {
	events     []dto.TriggeredEvent
	lastPrices dto.PriceSnapshot
	publishErr error
}

func (r *fakeEventRepo) PublishTriggered(_ context.Context, event *dto.TriggeredEvent) error {
	if r.publishErr != nil {
		return r.publishErr
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) RecordLastPrices(_ context.Context, snapshot dto.PriceSnapshot) error {
	r.lastPrices = snapshot
	return nil
}

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func watcherConfig() *config.Config {
	return &config.Config{
		Watcher: config.Watcher{
			PollInterval:      time.Second,
			EvaluationTimeout: time.Second,
			BackoffInitial:    time.Millisecond,
			BackoffMax:        time.Millisecond,
		},
	}
}

func newTestWatcher(t *testing.T, repo *fakeAlertRepo, market *fakeMarketDataRepo, events *fakeEventRepo) (AlertWatcher, AlertService) {
	t.Helper()
	svc := NewAlertService(repo, nopLogger())
	require.NoError(t, svc.LoadIndex(context.Background()))
	return NewAlertWatcher(watcherConfig(), nopLogger(), svc, market, events), svc
}

func createAlert(t *testing.T, repo *fakeAlertRepo, symbol string, target float64, condition entity.AlertCondition) *entity.Alert {
	t.Helper()
	alert := &entity.Alert{
		UserID:      1,
		Symbol:      symbol,
		TargetPrice: target,
		Condition:   condition,
		IsActive:    true,
	}
	require.NoError(t, repo.Create(context.Background(), alert))
	return alert
}

func TestSweepFiresSatisfiedAlertOnce(t *testing.T) {
	repo := newFakeAlertRepo()
	alert := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)

	market := &fakeMarketDataRepo{snapshot: dto.PriceSnapshot{"BBCA": 105}}
	events := &fakeEventRepo{}
	watcher, svc := newTestWatcher(t, repo, market, events)

	require.NoError(t, watcher.Sweep(context.Background()))

	require.Len(t, events.events, 1)
	event := events.events[0]
	assert.Equal(t, alert.ID, event.AlertID)
	assert.Equal(t, "BBCA", event.Symbol)
	assert.Equal(t, 100.0, event.TargetPrice)
	assert.Equal(t, 105.0, event.ObservedPrice)
	assert.Equal(t, entity.AlertConditionAbove, event.Condition)

	require.Len(t, repo.histories, 1)
	assert.Equal(t, 105.0, repo.histories[0].ObservedPrice)

	stored, err := repo.GetByID(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.TriggeredAt)
	assert.Empty(t, svc.ActiveAlerts())

	// A second sweep must not fire again.
	require.NoError(t, watcher.Sweep(context.Background()))
	assert.Len(t, events.events, 1)
	assert.Len(t, repo.histories, 1)
}

func TestSweepConditions(t *testing.T) {
	tests := []struct {
		name      string
		condition entity.AlertCondition
		target    float64
		price     float64
		fires     bool
	}{
		{"above not reached", entity.AlertConditionAbove, 100, 99.99, false},
		{"above at target", entity.AlertConditionAbove, 100, 100, true},
		{"above crossed", entity.AlertConditionAbove, 100, 101, true},
		{"below not reached", entity.AlertConditionBelow, 100, 100.01, false},
		{"below at target", entity.AlertConditionBelow, 100, 100, true},
		{"equals within tolerance", entity.AlertConditionEquals, 100, 100.005, true},
		{"equals outside tolerance", entity.AlertConditionEquals, 100, 100.02, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeAlertRepo()
			createAlert(t, repo, "TLKM", tc.target, tc.condition)

			market := &fakeMarketDataRepo{snapshot: dto.PriceSnapshot{"TLKM": tc.price}}
			events := &fakeEventRepo{}
			watcher, _ := newTestWatcher(t, repo, market, events)

			require.NoError(t, watcher.Sweep(context.Background()))
			if tc.fires {
				assert.Len(t, events.events, 1)
				assert.Len(t, repo.histories, 1)
			} else {
				assert.Empty(t, events.events)
				assert.Empty(t, repo.histories)
			}
		})
	}
}

func TestSweepSkipsSymbolMissingFromSnapshot(t *testing.T) {
	repo := newFakeAlertRepo()
	alert := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)

	market := &fakeMarketDataRepo{snapshot: dto.PriceSnapshot{}}
	events := &fakeEventRepo{}
	watcher, svc := newTestWatcher(t, repo, market, events)

	require.NoError(t, watcher.Sweep(context.Background()))

	assert.Empty(t, events.events)
	assert.Empty(t, repo.histories)

	stored, err := repo.GetByID(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Len(t, svc.ActiveAlerts(), 1)
}

func TestSweepSnapshotFailure(t *testing.T) {
	repo := newFakeAlertRepo()
	createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)

	market := &fakeMarketDataRepo{err: errors.New("upstream down")}
	events := &fakeEventRepo{}
	watcher, _ := newTestWatcher(t, repo, market, events)

	assert.Error(t, watcher.Sweep(context.Background()))
	assert.Empty(t, events.events)
	assert.Empty(t, repo.histories)
}

func TestSweepWithoutActiveAlertsSkipsFetch(t *testing.T) {
	repo := newFakeAlertRepo()
	market := &fakeMarketDataRepo{}
	events := &fakeEventRepo{}
	watcher, _ := newTestWatcher(t, repo, market, events)

	require.NoError(t, watcher.Sweep(context.Background()))
	assert.Zero(t, market.calls)
}

func TestSweepToleratesRacedDeactivation(t *testing.T) {
	repo := newFakeAlertRepo()
	alert := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)

	market := &fakeMarketDataRepo{snapshot: dto.PriceSnapshot{"BBCA": 105}}
	events := &fakeEventRepo{}
	watcher, svc := newTestWatcher(t, repo, market, events)

	// Deactivate behind the index's back, as a concurrent API update would.
	inactive := false
	require.NoError(t, repo.Update(context.Background(), alert.ID, entity.AlertUpdate{IsActive: &inactive}))

	require.NoError(t, watcher.Sweep(context.Background()))

	assert.Empty(t, events.events)
	assert.Empty(t, repo.histories)
	assert.Empty(t, svc.ActiveAlerts())
}

func TestSweepIsolatesFailingAlert(t *testing.T) {
	repo := newFakeAlertRepo()
	broken := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)
	healthy := createAlert(t, repo, "TLKM", 50, entity.AlertConditionAbove)
	repo.triggerErr[broken.ID] = errors.New("db write failed")

	market := &fakeMarketDataRepo{snapshot: dto.PriceSnapshot{"BBCA": 105, "TLKM": 55}}
	events := &fakeEventRepo{}
	watcher, _ := newTestWatcher(t, repo, market, events)

	require.NoError(t, watcher.Sweep(context.Background()))

	require.Len(t, events.events, 1)
	assert.Equal(t, healthy.ID, events.events[0].AlertID)
	require.Len(t, repo.histories, 1)
	assert.Equal(t, "TLKM", repo.histories[0].Symbol)
}

func TestSweepRecordsLastPrices(t *testing.T) {
	repo := newFakeAlertRepo()
	createAlert(t, repo, "BBCA", 200, entity.AlertConditionAbove)

	market := &fakeMarketDataRepo{snapshot: dto.PriceSnapshot{"BBCA": 105}}
	events := &fakeEventRepo{}
	watcher, _ := newTestWatcher(t, repo, market, events)

	require.NoError(t, watcher.Sweep(context.Background()))
	assert.Equal(t, dto.PriceSnapshot{"BBCA": 105}, events.lastPrices)
}

func TestDistinctSymbols(t *testing.T) {
	alerts := []entity.Alert{
		{Symbol: "BBCA"},
		{Symbol: "TLKM"},
		{Symbol: "BBCA"},
	}
	assert.ElementsMatch(t, []string{"BBCA", "TLKM"}, distinctSymbols(alerts))
}
