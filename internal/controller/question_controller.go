package controller

import (
	"errors"
	"net/http"

	"quizroom_backend/internal/service"
	"quizroom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	AIService *service.AIService
}

func NewQuestionController(aiService *service.AIService) *QuestionController {
	return &QuestionController{AIService: aiService}
}

// Generate godoc
// @Summary AI 生成题目
// @Description 按主题和难度生成 6-10 道题，输出经逐题校验，不合法直接报错不重试
// @Tags 题目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.GenerateQuestionsInput true "生成参数"
// @Success 200 {object} util.Response{data=[]service.QuestionInput}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 502 {object} util.Response "AI 服务不可用或输出不合法"
// @Router /api/questions/generate [post]
func (c *QuestionController) Generate(ctx *gin.Context) {
	var req service.GenerateQuestionsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.AIService.Generate(req)
	if err != nil {
		if errors.Is(err, util.ErrAIUnavailable) {
			util.Error(ctx, http.StatusServiceUnavailable, err.Error())
			return
		}
		util.Error(ctx, http.StatusBadGateway, err.Error())
		return
	}
	util.Success(ctx, questions)
}
