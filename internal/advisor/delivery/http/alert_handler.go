package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AlertHandler handles HTTP requests for price alerts.
type AlertHandler struct {
	alertService     service.AlertService
	alertHistoryRepo repository.AlertHistoryRepository
	logger           *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, alertHistoryRepo repository.AlertHistoryRepository, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, alertHistoryRepo: alertHistoryRepo, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAlert)
	g.GET("", h.ListAlerts)
	g.PUT("/:id", h.UpdateAlert)
	g.DELETE("/:id", h.DeleteAlert)
	g.GET("/:id/history", h.GetAlertHistory)
}

// CreateAlert godoc
// @Summary Create a price alert
// @Description Register a new active price alert for a user
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   alert  body    dto.CreateAlertRequest   true    "Alert to create"
// @Success 201 {object} entity.Alert
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [post]
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req dto.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" || req.TargetPrice <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "symbol and a positive target_price are required"})
	}
	switch req.Condition {
	case entity.AlertConditionAbove, entity.AlertConditionBelow, entity.AlertConditionEquals:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "condition must be ABOVE, BELOW or EQUALS"})
	}

	alert, err := h.alertService.Create(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create alert", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create alert"})
	}
	return c.JSON(http.StatusCreated, alert)
}

// ListAlerts godoc
// @Summary List alerts for a user
// @Description List all alerts owned by the given user
// @Tags alerts
// @Produce  json
// @Param   user_id  query    int true    "User ID"
// @Success 200 {array} entity.Alert
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}

	alerts, err := h.alertService.ListByUser(c.Request().Context(), uint(userID))
	if err != nil {
		h.logger.Error("Failed to list alerts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// UpdateAlert godoc
// @Summary Update an alert
// @Description Patch the target price, condition or active flag of an alert
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Alert ID"
// @Param   alert  body    dto.UpdateAlertRequest   true    "Fields to update"
// @Success 200 {object} entity.Alert
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/{id} [put]
func (h *AlertHandler) UpdateAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid alert ID"})
	}

	var req dto.UpdateAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	alert, err := h.alertService.Update(c.Request().Context(), uint(id), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Alert not found"})
		}
		h.logger.Error("Failed to update alert", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update alert"})
	}
	return c.JSON(http.StatusOK, alert)
}

// DeleteAlert godoc
// @Summary Delete an alert
// @Description Delete an alert by its ID
// @Tags alerts
// @Produce  json
// @Param   id  path    int true    "Alert ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid alert ID"})
	}

	if err := h.alertService.Delete(c.Request().Context(), uint(id)); err != nil {
		h.logger.Error("Failed to delete alert", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete alert"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAlertHistory godoc
// @Summary Get trigger history for an alert
// @Description List the trigger records of an alert, most recent first
// @Tags alerts
// @Produce  json
// @Param   id  path    int true    "Alert ID"
// @Success 200 {array} entity.AlertHistory
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/{id}/history [get]
func (h *AlertHandler) GetAlertHistory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid alert ID"})
	}

	histories, err := h.alertHistoryRepo.ListByAlert(c.Request().Context(), uint(id))
	if err != nil {
		h.logger.Error("Failed to get alert history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get alert history"})
	}
	return c.JSON(http.StatusOK, histories)
}
