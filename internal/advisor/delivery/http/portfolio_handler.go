package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PortfolioHandler handles HTTP requests for portfolios.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreatePortfolio)
	g.GET("", h.ListPortfolios)
	g.GET("/:id", h.GetPortfolio)
	g.DELETE("/:id", h.DeletePortfolio)
	g.POST("/:id/positions", h.AddPosition)
	g.DELETE("/:id/positions/:positionId", h.RemovePosition)
	g.GET("/:id/assessment", h.GetAssessment)
	g.GET("/:id/concentration", h.GetConcentration)
}

// CreatePortfolio godoc
// @Summary Create a portfolio
// @Description Create an empty named portfolio for a user
// @Tags portfolios
// @Accept  json
// @Produce  json
// @Param   portfolio  body    dto.CreatePortfolioRequest   true    "Portfolio to create"
// @Success 201 {object} entity.Portfolio
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c echo.Context) error {
	var req dto.CreatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	portfolio, err := h.portfolioService.Create(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create portfolio"})
	}
	return c.JSON(http.StatusCreated, portfolio)
}

// ListPortfolios godoc
// @Summary List portfolios for a user
// @Tags portfolios
// @Produce  json
// @Param   user_id  query    int true    "User ID"
// @Success 200 {array} entity.Portfolio
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios [get]
func (h *PortfolioHandler) ListPortfolios(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}

	portfolios, err := h.portfolioService.ListByUser(c.Request().Context(), uint(userID))
	if err != nil {
		h.logger.Error("Failed to list portfolios", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list portfolios"})
	}
	return c.JSON(http.StatusOK, portfolios)
}

// GetPortfolio godoc
// @Summary Get a portfolio with its positions
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 200 {object} entity.Portfolio
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	portfolio, err := h.portfolioService.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Portfolio not found"})
		}
		h.logger.Error("Failed to get portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get portfolio"})
	}
	return c.JSON(http.StatusOK, portfolio)
}

// DeletePortfolio godoc
// @Summary Delete a portfolio and its positions
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	if err := h.portfolioService.Delete(c.Request().Context(), uint(id)); err != nil {
		h.logger.Error("Failed to delete portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete portfolio"})
	}
	return c.NoContent(http.StatusNoContent)
}

// AddPosition godoc
// @Summary Add a position to a portfolio
// @Tags portfolios
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Param   position  body    dto.AddPositionRequest   true    "Position to add"
// @Success 201 {object} entity.Position
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios/{id}/positions [post]
func (h *PortfolioHandler) AddPosition(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	var req dto.AddPositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" || req.Shares <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "symbol and positive shares are required"})
	}

	position, err := h.portfolioService.AddPosition(c.Request().Context(), uint(id), &req)
	if err != nil {
		h.logger.Error("Failed to add position", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add position"})
	}
	return c.JSON(http.StatusCreated, position)
}

// RemovePosition godoc
// @Summary Remove a position from a portfolio
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Param   positionId  path    int true    "Position ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios/{id}/positions/{positionId} [delete]
func (h *PortfolioHandler) RemovePosition(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}
	positionID, err := strconv.ParseUint(c.Param("positionId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid position ID"})
	}

	if err := h.portfolioService.RemovePosition(c.Request().Context(), uint(id), uint(positionID)); err != nil {
		h.logger.Error("Failed to remove position", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove position"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAssessment godoc
// @Summary Get the aggregate risk assessment of a portfolio
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 200 {object} analysis.PortfolioAssessment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolios/{id}/assessment [get]
func (h *PortfolioHandler) GetAssessment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	assessment, err := h.portfolioService.Assess(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Portfolio not found"})
		}
		h.logger.Error("Failed to assess portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to assess portfolio"})
	}
	if assessment == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "Portfolio has no valued positions"})
	}
	return c.JSON(http.StatusOK, assessment)
}

// GetConcentration godoc
// @Summary Get the concentration report of a portfolio
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 200 {object} analysis.ConcentrationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolios/{id}/concentration [get]
func (h *PortfolioHandler) GetConcentration(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	report, err := h.portfolioService.Concentration(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Portfolio not found"})
		}
		h.logger.Error("Failed to compute concentration", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute concentration"})
	}
	if report == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "Portfolio has no valued positions"})
	}
	return c.JSON(http.StatusOK, report)
}
