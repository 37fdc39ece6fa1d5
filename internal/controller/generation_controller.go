package controller

import (
	"errors"
	"strconv"
	"time"

	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GenerationController struct {
	Generator *service.TaskGeneratorService
}

func NewGenerationController(generator *service.TaskGeneratorService) *GenerationController {
	return &GenerationController{Generator: generator}
}

// @Summary Generate cycle tasks from an approved carta
// @Description Expands every action into dated occurrences over the cycle window
// @Tags generation
// @Produce json
// @Param id path int true "Carta ID"
// @Success 200 {object} util.Response
// @Router /api/cartas/{id}/generate [post]
func (c *GenerationController) GenerateTasks(ctx *gin.Context) {
	cartaID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid carta id")
		return
	}

	// Bulk generation never surfaces internal errors; the result object
	// carries the outcome either way.
	util.Success(ctx, c.Generator.GenerateTasksForCarta(uint(cartaID)))
}

// @Summary Validate a carta for generation
// @Tags generation
// @Produce json
// @Param id path int true "Carta ID"
// @Success 200 {object} util.Response
// @Router /api/cartas/{id}/validate [get]
func (c *GenerationController) ValidateCarta(ctx *gin.Context) {
	cartaID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid carta id")
		return
	}

	validation, err := c.Generator.ValidateCartaForGeneration(uint(cartaID))
	if err != nil {
		if errors.Is(err, util.ErrCartaNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, validation)
}

// @Summary Task statistics for a carta
// @Tags generation
// @Produce json
// @Param id path int true "Carta ID"
// @Success 200 {object} util.Response
// @Router /api/cartas/{id}/task-stats [get]
func (c *GenerationController) GetTaskStats(ctx *gin.Context) {
	cartaID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid carta id")
		return
	}

	stats, err := c.Generator.GetTaskStats(uint(cartaID))
	if err != nil {
		if errors.Is(err, util.ErrCartaNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

type additionalTasksRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
}

// @Summary Generate additional tasks for an extended cycle window
// @Tags generation
// @Accept json
// @Produce json
// @Param id path int true "Participant ID"
// @Success 200 {object} util.Response
// @Router /api/participants/{id}/additional-tasks [post]
func (c *GenerationController) GenerateAdditionalTasks(ctx *gin.Context) {
	participantID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid participant id")
		return
	}

	var req additionalTasksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fromDate, err := time.Parse(util.DateFormat, req.FromDate)
	if err != nil {
		util.BadRequest(ctx, "fromDate must be formatted as YYYY-MM-DD")
		return
	}
	toDate, err := time.Parse(util.DateFormat, req.ToDate)
	if err != nil {
		util.BadRequest(ctx, "toDate must be formatted as YYYY-MM-DD")
		return
	}

	util.Success(ctx, c.Generator.GenerateAdditionalTasks(uint(participantID), fromDate, toDate))
}
