package handlers

import (
	"context"
	"errors"
	"net/http"

	"fantasy-draft/internal/api/models"
	"fantasy-draft/internal/optimizer"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// classifyError maps an optimization failure onto an HTTP status and error
// code. EmptyCandidatePool is checked first since it is also infeasible.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, optimizer.ErrEmptyCandidatePool):
		return http.StatusUnprocessableEntity, "EMPTY_CANDIDATE_POOL"
	case errors.Is(err, optimizer.ErrInfeasibleConstraints):
		return http.StatusUnprocessableEntity, "INFEASIBLE_CONSTRAINTS"
	case errors.Is(err, optimizer.ErrInvalidConstraint):
		return http.StatusBadRequest, "INVALID_CONSTRAINT"
	case errors.Is(err, optimizer.ErrInvalidWeights):
		return http.StatusBadRequest, "INVALID_WEIGHTS"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "SOLVE_TIMEOUT"
	case errors.Is(err, context.Canceled):
		return 499, "REQUEST_CANCELED"
	default:
		return http.StatusInternalServerError, "OPTIMIZATION_ERROR"
	}
}

func writeOptimizationError(c *gin.Context, err error) string {
	status, code := classifyError(err)
	var details map[string]interface{}
	var ce *optimizer.ConstraintError
	if errors.As(err, &ce) {
		details = map[string]interface{}{"reason": ce.Reason}
		if ce.Position != "" {
			details["position"] = string(ce.Position)
		}
	}
	writeError(c, status, code, err.Error(), details)
	return code
}
