package controller

import (
	"errors"

	"quizroom_backend/internal/service"
	"quizroom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{AuthService: authService, UserService: userService}
}

// Signup godoc
// @Summary 注册新用户
// @Description 用户名和邮箱唯一，返回 JWT 与用户信息
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.SignupInput true "注册信息"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名或邮箱已被占用"
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req service.SignupInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Signup(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered), errors.Is(err, util.ErrUsernameTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// Login godoc
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "登录信息"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredential) {
			util.Error(ctx, 401, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Me godoc
// @Summary 当前登录用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// Update godoc
// @Summary 更新个人资料
// @Description multipart 表单：username、email 可选，profilePicture 为可选头像文件
// @Tags 认证
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param username formData string false "用户名"
// @Param email formData string false "邮箱"
// @Param profilePicture formData file false "头像文件"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 409 {object} util.Response "用户名或邮箱已被占用"
// @Router /api/auth/update [put]
func (c *AuthController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	input := service.UpdateProfileInput{
		Username: ctx.PostForm("username"),
		Email:    ctx.PostForm("email"),
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUsernameTaken), errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if fileHeader, err := ctx.FormFile("profilePicture"); err == nil && fileHeader != nil {
		user, err = c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, fileHeader)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	util.Success(ctx, user)
}

// RemovePicture godoc
// @Summary 移除头像
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/auth/remove-picture [put]
func (c *AuthController) RemovePicture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.RemovePicture(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
