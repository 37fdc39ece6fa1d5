package controller

import (
	"errors"
	"strconv"
	"time"

	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CycleController struct {
	CycleService *service.CycleService
}

func NewCycleController(cycleService *service.CycleService) *CycleController {
	return &CycleController{CycleService: cycleService}
}

// @Summary Calculate cycle dates
// @Description Resolve the cycle window for the authenticated participant
// @Tags cycles
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} util.Response
// @Router /api/cycles/dates [get]
func (c *CycleController) CalculateCycleDates(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var start *time.Time
	if startStr := ctx.Query("start"); startStr != "" {
		parsed, err := time.Parse(util.DateFormat, startStr)
		if err != nil {
			util.BadRequest(ctx, "start must be formatted as YYYY-MM-DD")
			return
		}
		start = &parsed
	}

	dates, err := c.CycleService.CalculateCycleDates(claims.ParticipantID, "", start)
	if err != nil {
		respondCycleError(ctx, err)
		return
	}

	util.Success(ctx, dates)
}

// @Summary Check cycle eligibility
// @Description Whether the participant can start a new cycle
// @Tags cycles
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/cycles/can-start [get]
func (c *CycleController) CanStartNewCycle(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	canStart, reason, err := c.CycleService.CanStartNewCycle(claims.ParticipantID)
	if err != nil {
		respondCycleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"canStart": canStart, "reason": reason})
}

// @Summary Remaining cycle days
// @Tags cycles
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} util.Response
// @Router /api/cycles/remaining-days [get]
func (c *CycleController) CalculateRemainingDays(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	from := time.Now()
	if fromStr := ctx.Query("from"); fromStr != "" {
		parsed, err := time.Parse(util.DateFormat, fromStr)
		if err != nil {
			util.BadRequest(ctx, "from must be formatted as YYYY-MM-DD")
			return
		}
		from = parsed
	}

	remaining, err := c.CycleService.CalculateRemainingDays(claims.ParticipantID, from)
	if err != nil {
		respondCycleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"remainingDays": remaining})
}

// @Summary Last generated task date
// @Tags cycles
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/cycles/last-task-date [get]
func (c *CycleController) GetLastTaskDate(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lastDate, err := c.CycleService.GetLastTaskDate(claims.ParticipantID)
	if err != nil {
		respondCycleError(ctx, err)
		return
	}

	if lastDate == nil {
		util.Success(ctx, gin.H{"lastTaskDate": nil})
		return
	}
	util.Success(ctx, gin.H{"lastTaskDate": lastDate.Format(util.DateFormat)})
}

type extensionRequest struct {
	CurrentEnd  string `json:"currentEnd" binding:"required"`
	ProposedEnd string `json:"proposedEnd" binding:"required"`
}

// @Summary Validate a cycle extension date
// @Tags cycles
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/cycles/validate-extension [post]
func (c *CycleController) ValidateExtensionDate(ctx *gin.Context) {
	var req extensionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	currentEnd, err := time.Parse(util.DateFormat, req.CurrentEnd)
	if err != nil {
		util.BadRequest(ctx, "currentEnd must be formatted as YYYY-MM-DD")
		return
	}
	proposedEnd, err := time.Parse(util.DateFormat, req.ProposedEnd)
	if err != nil {
		util.BadRequest(ctx, "proposedEnd must be formatted as YYYY-MM-DD")
		return
	}

	util.Success(ctx, c.CycleService.ValidateExtensionDate(currentEnd, proposedEnd))
}

// @Summary Cycle progress stats
// @Tags cycles
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/cycles/stats [get]
func (c *CycleController) GetCycleStats(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.CycleService.GetCycleStats(claims.ParticipantID)
	if err != nil {
		respondCycleError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary Cycle stats for any participant
// @Description Mentor/admin view of a participant's cycle progress
// @Tags cycles
// @Produce json
// @Param id path int true "Participant ID"
// @Success 200 {object} util.Response
// @Router /api/participants/{id}/cycle-stats [get]
func (c *CycleController) GetParticipantCycleStats(ctx *gin.Context) {
	participantID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid participant id")
		return
	}

	stats, err := c.CycleService.GetCycleStats(uint(participantID))
	if err != nil {
		respondCycleError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

func respondCycleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrParticipantNotFound),
		errors.Is(err, util.ErrEnrollmentNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrGroupCycleNotSupported):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
