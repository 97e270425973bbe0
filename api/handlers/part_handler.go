package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filatrack/filatrack/api/models"
)

// CreatePrintedPart records a printed part and debits its filament
func (h *Handler) CreatePrintedPart(c *gin.Context) {
	var part models.PrintedPart
	if err := c.ShouldBindJSON(&part); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if part.WeightUsed < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight used cannot be negative"})
		return
	}
	if part.PrintTime < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "print time cannot be negative"})
		return
	}

	created := h.Store.AddPrintedPart(part)
	c.JSON(http.StatusCreated, created)
}

// GetPrintedParts returns all printed parts, optionally filtered by project
func (h *Handler) GetPrintedParts(c *gin.Context) {
	parts := h.Store.Snapshot().PrintedParts
	if projectID := c.Query("project"); projectID != "" {
		filtered := make([]models.PrintedPart, 0, len(parts))
		for _, p := range parts {
			if p.ProjectID == projectID {
				filtered = append(filtered, p)
			}
		}
		parts = filtered
	}
	c.JSON(http.StatusOK, parts)
}

// GetPrintedPart returns one printed part by id
func (h *Handler) GetPrintedPart(c *gin.Context) {
	part, ok := h.Store.PrintedPart(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "printed part not found"})
		return
	}
	c.JSON(http.StatusOK, part)
}

// UpdatePrintedPart replaces a printed part and reconciles filament weight
func (h *Handler) UpdatePrintedPart(c *gin.Context) {
	var part models.PrintedPart
	if err := c.ShouldBindJSON(&part); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	part.ID = c.Param("id")
	if _, ok := h.Store.PrintedPart(part.ID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "printed part not found"})
		return
	}
	if part.WeightUsed < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight used cannot be negative"})
		return
	}

	h.Store.UpdatePrintedPart(part)
	c.JSON(http.StatusOK, part)
}

// DeletePrintedPart removes a printed part and credits its filament
func (h *Handler) DeletePrintedPart(c *gin.Context) {
	h.Store.DeletePrintedPart(c.Param("id"))
	c.Status(http.StatusNoContent)
}
