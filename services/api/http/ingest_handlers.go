package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/bantaybaha/floodwatch/services/api/errors"
	"github.com/bantaybaha/floodwatch/services/api/service"
)

type ingestForm struct {
	CM        float64 `schema:"cm,required"`
	Feet      float64 `schema:"ft,required"`
	Threshold string  `schema:"threshold,required"`
}

// handleIngest stores one sensor sample sent as query parameters or a form body.
// @Summary Ingest a water-level sample
// @Tags ingest
// @Produce json
// @Param cm query number true "Water level in centimeters"
// @Param ft query number true "Water level in feet"
// @Param threshold query string true "Threshold label"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /ingest [get]
// @Router /ingest [post]
func (s *Server) handleIngest(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		respondError(c, apierrors.NewValidationError("malformed request", err))
		return
	}

	var form ingestForm
	if err := s.decoder.Decode(&form, c.Request.Form); err != nil {
		respondError(c, apierrors.NewValidationError("cm, ft and threshold are required; cm and ft must be numbers", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	res, err := s.svc.Ingest(ctx, service.IngestRequest{
		CM:        form.CM,
		Feet:      form.Feet,
		Threshold: form.Threshold,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"data":     res.Reading,
		"reported": res.Reported,
	})
}
