package http

import (
	"errors"
	"net/http"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AnalysisHandler handles HTTP requests for stock analysis.
type AnalysisHandler struct {
	analyzerService service.AnalyzerService
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzerService service.AnalyzerService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzerService: analyzerService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.AnalyzeStock)
	g.GET("/:symbol", h.GetLatestAnalysis)
}

// AnalyzeStock godoc
// @Summary Analyze a stock
// @Description Run the full analysis pipeline for a symbol and persist the result
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   analysis  body    dto.AnalyzeStockParam   true    "Symbol and series shape"
// @Success 200 {object} dto.StockAnalysisResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis [post]
func (h *AnalysisHandler) AnalyzeStock(c echo.Context) error {
	var param dto.AnalyzeStockParam
	if err := c.Bind(&param); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if param.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "symbol is required"})
	}

	result, err := h.analyzerService.Analyze(c.Request().Context(), param)
	if err != nil {
		h.logger.Error("Failed to analyze stock", logger.ErrorField(err), logger.StringField("symbol", param.Symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to analyze stock"})
	}
	return c.JSON(http.StatusOK, result)
}

// GetLatestAnalysis godoc
// @Summary Get the latest analysis for a symbol
// @Description Return the most recent persisted analysis result
// @Tags analysis
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Success 200 {object} dto.StockAnalysisResult
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis/{symbol} [get]
func (h *AnalysisHandler) GetLatestAnalysis(c echo.Context) error {
	symbol := c.Param("symbol")

	result, err := h.analyzerService.GetLatest(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No analysis found for symbol"})
		}
		h.logger.Error("Failed to get latest analysis", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get analysis"})
	}
	return c.JSON(http.StatusOK, result)
}
