package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/bantaybaha/floodwatch/services/api/errors"
)

// longest window accepted before the service applies its configured maximum
const maxHoursParam = 24 * 366

func noCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// handleLatest returns the most recent sample.
// @Summary Latest water level
// @Tags readings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /latest [get]
func (s *Server) handleLatest(c *gin.Context) {
	noCache(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	latest, err := s.svc.Latest(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       latest.Reading,
		"freshness":  latest.Freshness,
		"fetched_at": s.svc.Display(s.svc.Now()),
	})
}

// handleHistory returns the samples of the trailing window, oldest first.
// @Summary Water level history
// @Tags readings
// @Produce json
// @Param hours query number false "Window length in hours" default(24)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /history [get]
func (s *Server) handleHistory(c *gin.Context) {
	noCache(c)

	var window time.Duration
	if hoursStr := c.Query("hours"); hoursStr != "" {
		hours, err := strconv.ParseFloat(hoursStr, 64)
		if err != nil || !(hours > 0) || hours > maxHoursParam {
			respondError(c, apierrors.NewValidationError("hours must be a positive number", err))
			return
		}
		window = time.Duration(hours * float64(time.Hour))
		if window <= 0 {
			respondError(c, apierrors.NewValidationError("hours is too small", nil))
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	res, err := s.svc.Window(ctx, window)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      res.Readings,
		"current":   res.Current,
		"count":     len(res.Readings),
		"freshness": res.Freshness,
		"window": gin.H{
			"hours": res.Duration.Hours(),
			"from":  s.svc.Display(res.From),
			"to":    s.svc.Display(res.To),
		},
		"fetched_at": s.svc.Display(s.svc.Now()),
	})
}
