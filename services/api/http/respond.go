package http

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/bantaybaha/floodwatch/services/api/errors"
)

// respondError renders err in the {success:false} envelope and aborts the chain.
func respondError(c *gin.Context, err error) {
	apiErr, ok := apierrors.As(err)
	if !ok {
		apiErr = apierrors.NewInternalError("internal server error", err)
	}
	apiErr.WithRequestID(requestID(c))

	c.AbortWithStatusJSON(apiErr.Code, gin.H{
		"success":    false,
		"error":      apiErr.Message,
		"error_type": apiErr.Type,
		"request_id": apiErr.RequestID,
	})
}
