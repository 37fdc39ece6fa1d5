package controller

import (
	"errors"
	"strconv"

	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ParticipantController struct {
	ParticipantService *service.ParticipantService
}

func NewParticipantController(participantService *service.ParticipantService) *ParticipantController {
	return &ParticipantController{ParticipantService: participantService}
}

// @Summary Progress snapshot
// @Description XP, coins, derived level, streak, collections and recent rewards
// @Tags participants
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ParticipantController) GetProgress(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.ParticipantService.GetProgress(claims.ParticipantID)
	if err != nil {
		if errors.Is(err, util.ErrParticipantNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// @Summary Leaderboard
// @Tags participants
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (c *ParticipantController) GetLeaderboard(ctx *gin.Context) {
	limit := 10
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	leaderboard, err := c.ParticipantService.GetLeaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, leaderboard)
}

// @Summary Daily motivational quote
// @Tags participants
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/quote [get]
func (c *ParticipantController) GetDailyQuote(ctx *gin.Context) {
	quote, err := c.ParticipantService.GetDailyQuote()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"quote": quote})
}
