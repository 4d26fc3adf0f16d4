package controller

import (
	"errors"
	"strconv"

	"quizroom_backend/internal/service"
	"quizroom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService        *service.QuizService
	LeaderboardService *service.LeaderboardService
}

func NewQuizController(quizService *service.QuizService, leaderboardService *service.LeaderboardService) *QuizController {
	return &QuizController{QuizService: quizService, LeaderboardService: leaderboardService}
}

// CheckAttempt godoc
// @Summary 查询当前用户在房间的答题状态
// @Tags 答题
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response{data=service.AttemptStatusInfo}
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/quiz/check-attempt/{roomCode} [get]
func (c *QuizController) CheckAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	info, err := c.QuizService.CheckAttempt(claims.UserID, ctx.Param("roomCode"))
	if err != nil {
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, info)
}

// Start godoc
// @Summary 开始（或恢复）答题
// @Description 已完成/已放弃返回 409，前端据此跳转最终排行榜；进行中则带游标恢复
// @Tags 答题
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response{data=service.StartResult}
// @Failure 404 {object} util.Response "房间不存在"
// @Failure 409 {object} util.Response "该房间已答过"
// @Router /api/quiz/start/{roomCode} [post]
func (c *QuizController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.Start(claims.UserID, ctx.Param("roomCode"))
	if err != nil {
		if errors.Is(err, util.ErrQuizAlreadyTaken) {
			util.Conflict(ctx, err.Error())
			return
		}
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// SubmitAnswer godoc
// @Summary 提交单题答案
// @Description 每题只能提交一次，重复提交返回 400；返回判分结果与新游标
// @Tags 答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitAnswerInput true "答案"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 400 {object} util.Response "重复提交或状态不允许"
// @Failure 404 {object} util.Response "答题记录或题目不存在"
// @Router /api/quiz/submit-answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAnswer(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionAlreadyAnswered), errors.Is(err, util.ErrAttemptNotInProgress):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

type attemptRequest struct {
	AttemptID uint `json:"attemptId" binding:"required"`
}

// Heartbeat godoc
// @Summary 答题心跳
// @Description 刷新进行中记录的最后活跃时间，防止被清理任务判为放弃
// @Tags 答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body attemptRequest true "答题记录 ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/heartbeat [post]
func (c *QuizController) Heartbeat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req attemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.Heartbeat(claims.UserID, req.AttemptID); err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"ok": true})
}

// Complete godoc
// @Summary 完成答题
// @Tags 答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body attemptRequest true "答题记录 ID"
// @Success 200 {object} util.Response{data=service.CompleteResult}
// @Failure 400 {object} util.Response "记录不在进行中"
// @Router /api/quiz/complete [post]
func (c *QuizController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req attemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Complete(ctx.Request.Context(), claims.UserID, req.AttemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptNotInProgress):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// CurrentLeaderboard godoc
// @Summary 实时排行榜
// @Description 包含所有状态的答题记录，按截至某题序号的得分排名
// @Tags 答题
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Param questionIndex path int true "题目序号（1 起）"
// @Success 200 {object} util.Response{data=service.CurrentLeaderboard}
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/quiz/current-leaderboard/{roomCode}/{questionIndex} [get]
func (c *QuizController) CurrentLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	cutoff, err := strconv.Atoi(ctx.Param("questionIndex"))
	if err != nil || cutoff < 0 {
		util.BadRequest(ctx, "questionIndex must be a non-negative integer")
		return
	}

	board, err := c.LeaderboardService.Current(ctx.Param("roomCode"), cutoff, claims.UserID)
	if err != nil {
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// FinalLeaderboard godoc
// @Summary 最终排行榜
// @Description 只统计已完成/已放弃的记录，结果短期缓存
// @Tags 答题
// @Produce json
// @Security BearerAuth
// @Param roomCode path string true "5 位房间码"
// @Success 200 {object} util.Response{data=service.FinalLeaderboard}
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/quiz/final-leaderboard/{roomCode} [get]
func (c *QuizController) FinalLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	board, err := c.LeaderboardService.Final(ctx.Request.Context(), ctx.Param("roomCode"), claims.UserID)
	if err != nil {
		respondRoomError(ctx, err)
		return
	}
	util.Success(ctx, board)
}
