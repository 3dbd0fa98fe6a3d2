package handlers

import (
	"net/http"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/gin-gonic/gin"
)

// WriteJSONResponse writes a success envelope
func WriteJSONResponse(c *gin.Context, data interface{}, status int) {
	c.JSON(status, gin.H{
		"success": true,
		"status":  status,
		"payload": data,
	})
}

// WriteJSONError writes an error envelope carrying the error taxonomy kind
func WriteJSONError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status := statusForKind(kind)
	c.JSON(status, gin.H{
		"success": false,
		"status":  status,
		"error": gin.H{
			"errorType": string(kind),
			"message":   err.Error(),
		},
	})
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindAuthorizationDenied:
		return http.StatusUnauthorized
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindGatingViolation:
		return http.StatusForbidden
	case errs.KindStaleWriteConflict:
		return http.StatusConflict
	case errs.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
