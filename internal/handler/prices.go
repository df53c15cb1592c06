package handler

import (
	"errors"
	"net/http"
	"strings"

	"alpha-sparrow/internal/provider"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetPrice godoc
// @Summary      Get current quote for an instrument
// @Description  Returns the latest price and 24h change, served from cache when fresh
// @Tags         prices
// @Produce      json
// @Param        symbol  path  string  true  "Instrument symbol (e.g., BTC, ETH)"
// @Success      200  {object}  domain.Quote
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/prices/{symbol} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	quote, err := h.market.GetQuote(ctx, symbol)
	if err != nil {
		var provErr *provider.Error
		if errors.As(err, &provErr) && provErr.Kind == provider.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + symbol})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetAllPrices godoc
// @Summary      Get current quotes for the watchlist
// @Description  Returns latest quotes for every tracked instrument; unavailable ones are omitted
// @Tags         prices
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/prices [get]
func (h *Handler) GetAllPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-all-prices")
	defer span.End()

	quotes := h.market.GetQuotes(ctx)
	c.JSON(http.StatusOK, gin.H{
		"watchlist": h.market.Watchlist(),
		"quotes":    quotes,
	})
}
