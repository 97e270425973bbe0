package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filatrack/filatrack/scan"
)

type scanTextRequest struct {
	Text string `json:"text"`
}

// ScanText parses OCR'd label text into print time and price best-effort.
// Text with no recognizable values is not an error; both fields come back
// null.
func (h *Handler) ScanText(c *gin.Context) {
	var req scanTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scan.ParseText(req.Text))
}

type scanQRRequest struct {
	Payload string `json:"payload"`
}

// ScanQR extracts the filament id from a scanned QR payload
func (h *Handler) ScanQR(c *gin.Context) {
	var req scanQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := scan.DecodeQR([]byte(req.Payload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filamentId": id})
}
