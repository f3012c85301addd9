package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"challenge-monitor/internal/model"
	"challenge-monitor/internal/service"
)

type ChallengeHandler struct {
	svc *service.Lifecycle
}

func NewChallengeHandler(svc *service.Lifecycle) *ChallengeHandler {
	return &ChallengeHandler{svc: svc}
}

func challengeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// POST /api/challenges
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req model.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ch, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// GET /api/challenges
func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	c.JSON(http.StatusOK, challenges)
}

// GET /api/challenges/completed
func (h *ChallengeHandler) Completed(c *gin.Context) {
	challenges, err := h.svc.Completed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	c.JSON(http.StatusOK, challenges)
}

// GET /api/challenges/:id
func (h *ChallengeHandler) Get(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	ch, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// PUT /api/challenges/:id
func (h *ChallengeHandler) Update(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	var req model.UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ch, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// DELETE /api/challenges/:id
func (h *ChallengeHandler) Delete(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/challenges/:id/logs  body: {"date","status","notes"}
func (h *ChallengeHandler) LogDay(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	var req model.LogDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.svc.LogDay(c.Request.Context(), id, req.Date, req.Status, req.Notes); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/challenges/:id/logs
func (h *ChallengeHandler) Logs(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	events, err := h.svc.Events(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if events == nil {
		events = []model.DailyLogEvent{}
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/challenges/:id/status?date=YYYY-MM-DD
func (h *ChallengeHandler) Status(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	status, err := h.svc.ResolvedStatus(c.Request.Context(), id, date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.DayStatusResponse{ChallengeID: id, Date: date, Status: status})
}

// GET /api/challenges/:id/streaks
func (h *ChallengeHandler) Streaks(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	st, err := h.svc.Streaks(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StreakResponse{ChallengeID: id, Current: st.Current, Longest: st.Longest})
}

// GET /api/streaks
func (h *ChallengeHandler) StreakBoard(c *gin.Context) {
	entries, err := h.svc.StreakBoard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /api/days/:date/challenges?status=unlogged
func (h *ChallengeHandler) DayChallenges(c *gin.Context) {
	challenges, err := h.svc.ChallengesForDate(c.Request.Context(), c.Param("date"), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GET /api/days/:date/logs
func (h *ChallengeHandler) DayLogs(c *gin.Context) {
	events, err := h.svc.EventsForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	if events == nil {
		events = []model.DailyLogEvent{}
	}
	c.JSON(http.StatusOK, events)
}
