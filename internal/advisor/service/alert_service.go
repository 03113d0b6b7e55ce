package service

import (
	"context"
	"sync"
	"time"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"
)

// AlertService owns alert state. It keeps an in-memory index of active
// alerts that is rebuilt from storage on startup and written through on
// every mutation, so the watcher never reads stale state.
type AlertService interface {
	LoadIndex(ctx context.Context) error
	Create(ctx context.Context, req *dto.CreateAlertRequest) (*entity.Alert, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Alert, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAlertRequest) (*entity.Alert, error)
	Delete(ctx context.Context, id uint) error
	ActiveAlerts() []entity.Alert
	Trigger(ctx context.Context, alert *entity.Alert, observedPrice float64, at time.Time) (*entity.AlertHistory, error)
}

type alertService struct {
	alertRepo repository.AlertRepository
	log       *logger.Logger

	mu    sync.RWMutex
	index map[uint]entity.Alert
}

func NewAlertService(alertRepo repository.AlertRepository, log *logger.Logger) AlertService {
	return &alertService{
		alertRepo: alertRepo,
		log:       log,
		index:     map[uint]entity.Alert{},
	}
}

// LoadIndex rebuilds the active-alert index from storage.
func (s *alertService) LoadIndex(ctx context.Context) error {
	alerts, err := s.alertRepo.FindActive(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(map[uint]entity.Alert, len(alerts))
	for _, alert := range alerts {
		s.index[alert.ID] = alert
	}
	s.log.Info("Alert index loaded", logger.IntField("active_alerts", len(alerts)))
	return nil
}

func (s *alertService) Create(ctx context.Context, req *dto.CreateAlertRequest) (*entity.Alert, error) {
	alert := &entity.Alert{
		UserID:      req.UserID,
		Symbol:      req.Symbol,
		TargetPrice: req.TargetPrice,
		Condition:   req.Condition,
		IsActive:    true,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.index[alert.ID] = *alert
	s.mu.Unlock()
	return alert, nil
}

func (s *alertService) ListByUser(ctx context.Context, userID uint) ([]entity.Alert, error) {
	return s.alertRepo.ListByUser(ctx, userID)
}

func (s *alertService) Update(ctx context.Context, id uint, req *dto.UpdateAlertRequest) (*entity.Alert, error) {
	update := entity.AlertUpdate{
		TargetPrice: req.TargetPrice,
		Condition:   req.Condition,
		IsActive:    req.IsActive,
	}
	if err := s.alertRepo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if alert.IsActive {
		s.index[alert.ID] = *alert
	} else {
		delete(s.index, alert.ID)
	}
	s.mu.Unlock()
	return alert, nil
}

func (s *alertService) Delete(ctx context.Context, id uint) error {
	if err := s.alertRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.index, id)
	s.mu.Unlock()
	return nil
}

// ActiveAlerts returns a snapshot copy of the index for a sweep.
func (s *alertService) ActiveAlerts() []entity.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]entity.Alert, 0, len(s.index))
	for _, alert := range s.index {
		alerts = append(alerts, alert)
	}
	return alerts
}

// Trigger deactivates the alert and appends its history row atomically,
// then drops it from the index. repository.ErrAlertNotActive propagates so
// the caller can tell a raced alert from a real failure.
func (s *alertService) Trigger(ctx context.Context, alert *entity.Alert, observedPrice float64, at time.Time) (*entity.AlertHistory, error) {
	history, err := s.alertRepo.Trigger(ctx, alert, observedPrice, at)
	if err != nil {
		if err == repository.ErrAlertNotActive {
			// Another writer got there first; drop the stale index entry.
			s.mu.Lock()
			delete(s.index, alert.ID)
			s.mu.Unlock()
		}
		return nil, err
	}

	s.mu.Lock()
	delete(s.index, alert.ID)
	s.mu.Unlock()
	return history, nil
}
