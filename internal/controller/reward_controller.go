package controller

import (
	"errors"
	"strconv"
	"time"

	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	RewardService     *service.RewardService
	PerfectDayService *service.PerfectDayService
}

func NewRewardController(rewardService *service.RewardService, perfectDayService *service.PerfectDayService) *RewardController {
	return &RewardController{
		RewardService:     rewardService,
		PerfectDayService: perfectDayService,
	}
}

type awardByEvidenceRequest struct {
	ParticipantID uint `json:"participantId" binding:"required"`
	EvidenceID    uint `json:"evidenceId" binding:"required"`
	ActionID      uint `json:"actionId" binding:"required"`
}

// @Summary Award a completion reward for approved evidence
// @Description Called by the evidence-review workflow after approval
// @Tags rewards
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/rewards/evidence [post]
func (c *RewardController) AwardByEvidence(ctx *gin.Context) {
	var req awardByEvidenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.RewardService.AwardByEvidence(req.ParticipantID, req.EvidenceID, req.ActionID)
	if err != nil {
		respondRewardError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

type specialTaskRequest struct {
	ParticipantID uint `json:"participantId" binding:"required"`
	SubmissionID  uint `json:"submissionId" binding:"required"`
	AssignedCoins int  `json:"assignedCoins"`
}

// @Summary Award an admin-assigned special task
// @Tags rewards
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/rewards/special-task [post]
func (c *RewardController) AwardSpecialTask(ctx *gin.Context) {
	var req specialTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.RewardService.AwardSpecialTask(req.ParticipantID, req.SubmissionID, req.AssignedCoins)
	if err != nil {
		respondRewardError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Evaluate a perfect day
// @Description Grants the daily bonus when every scheduled task was completed
// @Tags rewards
// @Produce json
// @Param id path int true "Participant ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} util.Response
// @Router /api/participants/{id}/perfect-day [post]
func (c *RewardController) EvaluatePerfectDay(ctx *gin.Context) {
	participantID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid participant id")
		return
	}

	date := time.Now()
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse(util.DateFormat, dateStr)
		if err != nil {
			util.BadRequest(ctx, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	result, err := c.PerfectDayService.Evaluate(uint(participantID), date)
	if err != nil {
		respondRewardError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

func respondRewardError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrParticipantNotFound),
		errors.Is(err, util.ErrEvidenceNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrEvidenceNotApproved):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
