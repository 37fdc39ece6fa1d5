package controller

import (
	"errors"

	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CollectionController struct {
	CollectionService *service.CollectionService
}

func NewCollectionController(collectionService *service.CollectionService) *CollectionController {
	return &CollectionController{CollectionService: collectionService}
}

// @Summary Verify collections
// @Description Evaluates every unearned collection and grants the satisfied ones
// @Tags collections
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/collections/check [post]
func (c *CollectionController) CheckAll(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	justCompleted, err := c.CollectionService.CheckAll(claims.ParticipantID)
	if err != nil {
		respondCollectionError(ctx, err)
		return
	}

	util.Success(ctx, justCompleted)
}

// @Summary Collection progress
// @Description Read-only progress numbers for every collection
// @Tags collections
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/collections/progress [get]
func (c *CollectionController) ProgressAll(ctx *gin.Context) {
	claims := util.GetParticipantFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.CollectionService.ProgressAll(claims.ParticipantID)
	if err != nil {
		respondCollectionError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

func respondCollectionError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrParticipantNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}
