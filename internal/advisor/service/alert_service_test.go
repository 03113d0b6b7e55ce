package service

import (
	"context"
	"testing"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIndexOnlyActiveAlerts(t *testing.T) {
	repo := newFakeAlertRepo()
	active := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)
	inactive := createAlert(t, repo, "TLKM", 50, entity.AlertConditionBelow)
	require.NoError(t, repo.Update(context.Background(), inactive.ID, entity.AlertUpdate{IsActive: utils.ToPointer(false)}))

	svc := NewAlertService(repo, nopLogger())
	require.NoError(t, svc.LoadIndex(context.Background()))

	alerts := svc.ActiveAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, active.ID, alerts[0].ID)
}

func TestCreateAddsToIndex(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, nopLogger())
	require.NoError(t, svc.LoadIndex(context.Background()))

	alert, err := svc.Create(context.Background(), &dto.CreateAlertRequest{
		UserID:      1,
		Symbol:      "BBCA",
		TargetPrice: 100,
		Condition:   entity.AlertConditionAbove,
	})
	require.NoError(t, err)
	assert.True(t, alert.IsActive)

	alerts := svc.ActiveAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.ID, alerts[0].ID)
}

func TestUpdateWritesThroughIndex(t *testing.T) {
	repo := newFakeAlertRepo()
	alert := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)

	svc := NewAlertService(repo, nopLogger())
	require.NoError(t, svc.LoadIndex(context.Background()))

	updated, err := svc.Update(context.Background(), alert.ID, &dto.UpdateAlertRequest{TargetPrice: utils.ToPointer(120.0)})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.TargetPrice)

	alerts := svc.ActiveAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, 120.0, alerts[0].TargetPrice)

	_, err = svc.Update(context.Background(), alert.ID, &dto.UpdateAlertRequest{IsActive: utils.ToPointer(false)})
	require.NoError(t, err)
	assert.Empty(t, svc.ActiveAlerts())
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	repo := newFakeAlertRepo()
	alert := createAlert(t, repo, "BBCA", 100, entity.AlertConditionAbove)

	svc := NewAlertService(repo, nopLogger())
	require.NoError(t, svc.LoadIndex(context.Background()))
	require.Len(t, svc.ActiveAlerts(), 1)

	require.NoError(t, svc.Delete(context.Background(), alert.ID))
	assert.Empty(t, svc.ActiveAlerts())
}
