package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

type PlanHandler struct {
	svc *services.PlanService
	log *logger.Logger
}

func NewPlanHandler(svc *services.PlanService, baseLog *logger.Logger) *PlanHandler {
	return &PlanHandler{svc: svc, log: baseLog.With("handler", "PlanHandler")}
}

// CreatePlan accepts a learner context and returns the explained path.
// The error taxonomy maps onto status codes: bad context 400, no feasible
// path 422 (with the exclusion list so callers can see why), corrupt graph
// 500, unavailable reasoner 502.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var uc domain.UserContext
	if err := c.ShouldBindJSON(&uc); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	res, err := h.svc.Plan(c.Request.Context(), uc)
	if err != nil {
		h.respondPlanError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *PlanHandler) respondPlanError(c *gin.Context, err error) {
	var notFound *planner.PathNotFoundError
	var apiErr *apierr.Error
	switch {
	case errors.Is(err, planner.ErrValidation):
		apiErr = apierr.New(http.StatusBadRequest, "invalid_context", err)
	case errors.As(err, &notFound):
		response.RespondErrorWithDetails(c, http.StatusUnprocessableEntity, "path_not_found", err, gin.H{
			"excluded_los": notFound.Excluded,
		})
		return
	case errors.Is(err, planner.ErrGraphIntegrity):
		h.log.Error("prerequisite graph corrupt", "error", err)
		apiErr = apierr.New(http.StatusInternalServerError, "graph_integrity", err)
	case errors.Is(err, planner.ErrReasonerUnavailable):
		apiErr = apierr.New(http.StatusBadGateway, "reasoner_unavailable", err)
	default:
		h.log.Error("plan request failed", "error", err)
		apiErr = apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
	response.RespondError(c, apiErr.Status, apiErr.Code, apiErr)
}
