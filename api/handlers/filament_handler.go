package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filatrack/filatrack/api/models"
	"github.com/filatrack/filatrack/scan"
)

// CreateFilament creates a new filament spool
func (h *Handler) CreateFilament(c *gin.Context) {
	var filament models.Filament
	if err := c.ShouldBindJSON(&filament); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if filament.TotalWeight <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "total weight must be positive"})
		return
	}

	// A fresh spool starts full unless the caller says otherwise
	if filament.RemainingWeight == 0 {
		filament.RemainingWeight = filament.TotalWeight
	}

	created := h.Store.AddFilament(filament)
	c.JSON(http.StatusCreated, created)
}

// GetFilaments returns all filament spools
func (h *Handler) GetFilaments(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Snapshot().Filaments)
}

// GetFilament returns one filament spool by id
func (h *Handler) GetFilament(c *gin.Context) {
	filament, ok := h.Store.Filament(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "filament not found"})
		return
	}
	c.JSON(http.StatusOK, filament)
}

// UpdateFilament replaces a filament spool wholesale. Weight edits here are
// deliberate stock corrections and are not reconciled against parts.
func (h *Handler) UpdateFilament(c *gin.Context) {
	var filament models.Filament
	if err := c.ShouldBindJSON(&filament); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filament.ID = c.Param("id")
	if _, ok := h.Store.Filament(filament.ID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "filament not found"})
		return
	}
	if filament.RemainingWeight < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "remaining weight cannot be negative"})
		return
	}

	h.Store.UpdateFilament(filament)
	c.JSON(http.StatusOK, filament)
}

// DeleteFilament removes a filament spool. Parts printed from it are kept.
func (h *Handler) DeleteFilament(c *gin.Context) {
	h.Store.DeleteFilament(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetFilamentQR returns the spool-label QR payload for a filament
func (h *Handler) GetFilamentQR(c *gin.Context) {
	filament, ok := h.Store.Filament(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "filament not found"})
		return
	}
	payload, err := scan.QRPayload(filament)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
