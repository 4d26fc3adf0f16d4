package controller

import (
	"errors"

	"quizroom_backend/internal/service"
	"quizroom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomService *service.RoomService
}

func NewRoomController(roomService *service.RoomService) *RoomController {
	return &RoomController{RoomService: roomService}
}

// Create godoc
// @Summary 创建答题房间
// @Description 名称和分类必填，至少 5 道题，返回生成的 5 位房间码
// @Tags 房间
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateRoomInput true "房间信息与题目列表"
// @Success 201 {object} util.Response{data=service.RoomSummary}
// @Failure 400 {object} util.Response "校验失败"
// @Router /api/rooms/create [post]
func (c *RoomController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateRoomInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.RoomService.Create(claims.UserID, req)
	if err != nil {
		// 创建失败绝大多数是输入校验问题
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, summary)
}

// MyRooms godoc
// @Summary 我创建的房间列表
// @Tags 房间
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.RoomSummary}
// @Router /api/rooms/my-rooms [get]
func (c *RoomController) MyRooms(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rooms, err := c.RoomService.MyRooms(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rooms)
}

// Search godoc
// @Summary 按房间码查找房间
// @Tags 房间
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response{data=service.RoomSummary}
// @Failure 400 {object} util.Response "房间码格式错误"
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/rooms/search/{roomCode} [get]
func (c *RoomController) Search(ctx *gin.Context) {
	summary, err := c.RoomService.Search(ctx.Param("roomCode"))
	if err != nil {
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Details godoc
// @Summary 房间详情（含按序题目，不含正确答案）
// @Tags 房间
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response{data=service.RoomDetail}
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/rooms/details/{roomCode} [get]
func (c *RoomController) Details(ctx *gin.Context) {
	detail, err := c.RoomService.Details(ctx.Param("roomCode"))
	if err != nil {
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

func respondRoomError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidRoomCode):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrRoomNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
