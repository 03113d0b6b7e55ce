package http

import (
	"net/http"
	"strconv"

	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for watchlists.
type WatchlistHandler struct {
	watchlistRepo repository.WatchlistRepository
	logger        *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistRepo repository.WatchlistRepository, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistRepo: watchlistRepo, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.AddItem)
	g.GET("", h.ListItems)
	g.DELETE("/:symbol", h.RemoveItem)
}

// AddItem godoc
// @Summary Add a symbol to a user's watchlist
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Param   item  body    entity.WatchlistItem   true    "Watchlist item"
// @Success 201 {object} entity.WatchlistItem
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) AddItem(c echo.Context) error {
	var item entity.WatchlistItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if item.Symbol == "" || item.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and symbol are required"})
	}

	if err := h.watchlistRepo.Add(c.Request().Context(), &item); err != nil {
		h.logger.Error("Failed to add watchlist item", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add watchlist item"})
	}
	return c.JSON(http.StatusCreated, item)
}

// ListItems godoc
// @Summary List a user's watchlist
// @Tags watchlist
// @Produce  json
// @Param   user_id  query    int true    "User ID"
// @Success 200 {array} entity.WatchlistItem
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) ListItems(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}

	items, err := h.watchlistRepo.ListByUser(c.Request().Context(), uint(userID))
	if err != nil {
		h.logger.Error("Failed to list watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list watchlist"})
	}
	return c.JSON(http.StatusOK, items)
}

// RemoveItem godoc
// @Summary Remove a symbol from a user's watchlist
// @Tags watchlist
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Param   user_id  query    int true    "User ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{symbol} [delete]
func (h *WatchlistHandler) RemoveItem(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}
	symbol := c.Param("symbol")

	if err := h.watchlistRepo.Remove(c.Request().Context(), uint(userID), symbol); err != nil {
		h.logger.Error("Failed to remove watchlist item", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove watchlist item"})
	}
	return c.NoContent(http.StatusNoContent)
}
