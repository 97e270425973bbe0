package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/filatrack/filatrack/api/models"
	"github.com/filatrack/filatrack/stats"
)

// GetSummary returns the dashboard counters
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, stats.Summarize(h.Store.Snapshot()))
}

// GetUsage returns a usage ranking grouped by ?by=material|color|manufacturer
func (h *Handler) GetUsage(c *gin.Context) {
	snap := h.Store.Snapshot()

	var items []stats.UsageItem
	switch c.DefaultQuery("by", "material") {
	case "material":
		items = stats.UsageByMaterial(snap)
	case "color":
		items = stats.UsageByColor(snap)
	case "manufacturer", "brand":
		items = stats.UsageByManufacturer(snap)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "by must be material, color or manufacturer"})
		return
	}

	if limit := queryLimit(c, 0); limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []stats.UsageItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetRecentParts returns the newest printed parts, default 3
func (h *Handler) GetRecentParts(c *gin.Context) {
	c.JSON(http.StatusOK, stats.RecentParts(h.Store.Snapshot(), queryLimit(c, 3)))
}

// GetMostUsed returns the most-printed-from spools, default 3
func (h *Handler) GetMostUsed(c *gin.Context) {
	items := stats.MostUsedFilaments(h.Store.Snapshot(), queryLimit(c, 3))
	if items == nil {
		items = []stats.FilamentUsage{}
	}
	c.JSON(http.StatusOK, items)
}

// GetFavorites returns the spools flagged as favorites
func (h *Handler) GetFavorites(c *gin.Context) {
	items := stats.FavoriteFilaments(h.Store.Snapshot())
	if items == nil {
		items = []models.Filament{}
	}
	c.JSON(http.StatusOK, items)
}

func queryLimit(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
