package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"challenge-monitor/internal/model"
	"challenge-monitor/internal/service"
)

type AutoSkipHandler struct {
	svc        *service.AutoSkip
	cutoffHour int
}

func NewAutoSkipHandler(svc *service.AutoSkip, cutoffHour int) *AutoSkipHandler {
	return &AutoSkipHandler{svc: svc, cutoffHour: cutoffHour}
}

// POST /api/autoskip  body: {"target_date":"YYYY-MM-DD"}
// An empty target date falls back to the cutoff-hour rule, same as
// the scheduled run.
func (h *AutoSkipHandler) Run(c *gin.Context) {
	var req model.AutoSkipRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}
	target := req.TargetDate
	if target == "" {
		target = service.TargetDate(time.Now(), h.cutoffHour)
	}

	ids, err := h.svc.Reconcile(c.Request.Context(), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.AutoSkipResponse{TargetDate: target, SkippedIDs: ids})
}
