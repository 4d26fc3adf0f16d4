package controller

import (
	"errors"

	"quizroom_backend/internal/service"
	"quizroom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SavedRoomController struct {
	SavedRoomService *service.SavedRoomService
}

func NewSavedRoomController(savedRoomService *service.SavedRoomService) *SavedRoomController {
	return &SavedRoomController{SavedRoomService: savedRoomService}
}

type saveRoomRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
}

// Add godoc
// @Summary 收藏房间
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body saveRoomRequest true "房间码"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "不能收藏自己的房间"
// @Failure 404 {object} util.Response "房间不存在"
// @Failure 409 {object} util.Response "已收藏"
// @Router /api/saved-rooms/add [post]
func (c *SavedRoomController) Add(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req saveRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SavedRoomService.Add(claims.UserID, req.RoomCode); err != nil {
		switch {
		case errors.Is(err, util.ErrRoomAlreadySaved):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrCannotSaveOwnRoom):
			util.BadRequest(ctx, err.Error())
		default:
			respondRoomError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"saved": true})
}

// Remove godoc
// @Summary 取消收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "房间或收藏不存在"
// @Router /api/saved-rooms/remove/{roomCode} [delete]
func (c *SavedRoomController) Remove(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SavedRoomService.Remove(claims.UserID, ctx.Param("roomCode")); err != nil {
		if errors.Is(err, util.ErrSavedRoomNotFound) {
			util.NotFound(ctx)
			return
		}
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": true})
}

// Check godoc
// @Summary 查询房间是否已收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response
// @Router /api/saved-rooms/check/{roomCode} [get]
func (c *SavedRoomController) Check(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	saved, err := c.SavedRoomService.IsSaved(claims.UserID, ctx.Param("roomCode"))
	if err != nil {
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"isSaved": saved})
}

// List godoc
// @Summary 我收藏的房间列表
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.SavedRoomEntry}
// @Router /api/saved-rooms [get]
func (c *SavedRoomController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.SavedRoomService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
