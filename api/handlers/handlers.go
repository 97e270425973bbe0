package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/filatrack/filatrack/store"
)

// Handler represents the API handlers
type Handler struct {
	Store *store.Store
	Log   zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(st *store.Store, log zerolog.Logger) *Handler {
	return &Handler{
		Store: st,
		Log:   log,
	}
}

// RequestLogger logs one event per request.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.Log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
